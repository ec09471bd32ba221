package services

import (
	"context"
	"strings"

	ics "github.com/arran4/golang-ical"
	"sayplan.app/pkg/eventstore"
)

// icsDateTime converts a wall-clock timestamp to the floating iCalendar
// form, e.g. "2024-08-20 09:00" to "20240820T090000". Floating times keep
// the stored wall-clock value; no timezone is attached.
func icsDateTime(dateTime string) string {
	compact := strings.ReplaceAll(dateTime, "-", "")
	compact = strings.ReplaceAll(compact, ":", "")
	compact = strings.Replace(compact, " ", "T", 1)
	return compact + "00"
}

func icsDate(date string) string {
	return strings.ReplaceAll(date, "-", "")
}

// BuildCalendar renders the user's events as an iCalendar feed. Detached
// and standalone events become plain VEVENTs; each recurring rule becomes
// one VEVENT carrying an RRULE, so subscribing clients expand the series
// themselves.
func (service *EventService) BuildCalendar(
	ctx context.Context,
	userID string,
) (*ics.Calendar, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//sayplan.app//calendar//EN")

	rules, err := service.rules.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, rule := range rules {
		occurrences, err := service.events.GetBySeries(ctx, rule.ID, userID)
		if err != nil {
			return nil, err
		}
		if len(occurrences) == 0 {
			continue
		}

		addSeriesEvent(cal, rule, occurrences[0])
	}

	// standalone and detached events, added one by one
	seen := map[string]bool{}
	for _, rule := range rules {
		seen[rule.ID] = true
	}

	events, err := service.events.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	for _, event := range events {
		if event.RecurringEventID != nil && seen[*event.RecurringEventID] {
			continue
		}

		addSingleEvent(cal, event)
	}

	return cal, nil
}

func addSingleEvent(cal *ics.Calendar, event eventstore.Event) {
	vevent := cal.AddEvent(event.ID)
	setEventFields(vevent, event)
}

func addSeriesEvent(
	cal *ics.Calendar,
	rule eventstore.RecurringRule,
	first eventstore.Event,
) {
	vevent := cal.AddEvent(rule.ID)
	setEventFields(vevent, first)
	vevent.AddRrule(rule.Rule + ";UNTIL=" + icsDate(rule.EndDate) + "T235959")
}

func setEventFields(vevent *ics.VEvent, event eventstore.Event) {
	vevent.SetSummary(event.Title)

	if event.Description != nil {
		vevent.SetDescription(*event.Description)
	}

	if event.Location != nil {
		vevent.SetLocation(event.Location.DisplayName())
	}

	if event.IsAllDay {
		vevent.SetProperty(
			ics.ComponentPropertyDtStart,
			icsDate(event.StartDate()),
			ics.WithValue("DATE"),
		)
		if event.EndTime != "" {
			vevent.SetProperty(
				ics.ComponentPropertyDtEnd,
				icsDate(event.EndDate()),
				ics.WithValue("DATE"),
			)
		}
		return
	}

	vevent.SetProperty(ics.ComponentPropertyDtStart, icsDateTime(event.StartTime))
	if event.EndTime != "" {
		vevent.SetProperty(ics.ComponentPropertyDtEnd, icsDateTime(event.EndTime))
	}
}
