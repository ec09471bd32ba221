package services

import (
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"sayplan.app/pkg/eventstore"
)

func TestIcsDateTime(t *testing.T) {
	assert.Equal(t, "20240820T090000", icsDateTime("2024-08-20 09:00"))
	assert.Equal(t, "20240820", icsDate("2024-08-20"))
}

func TestSetEventFieldsTimed(t *testing.T) {
	cal := ics.NewCalendar()
	vevent := cal.AddEvent("ev1")

	description := "weekly sync"
	//nolint:exhaustruct //other fields are optional
	setEventFields(vevent, eventstore.Event{
		ID:          "ev1",
		Title:       "Standup",
		Description: &description,
		StartTime:   "2024-08-20 09:00",
		EndTime:     "2024-08-20 09:30",
	})

	serialized := cal.Serialize()
	assert.Contains(t, serialized, "SUMMARY:Standup")
	assert.Contains(t, serialized, "DESCRIPTION:weekly sync")
	assert.Contains(t, serialized, "DTSTART:20240820T090000")
	assert.Contains(t, serialized, "DTEND:20240820T093000")
	// floating times, no timezone suffix
	assert.NotContains(t, serialized, "20240820T090000Z")
}

func TestSetEventFieldsAllDay(t *testing.T) {
	cal := ics.NewCalendar()
	vevent := cal.AddEvent("ev2")

	//nolint:exhaustruct //other fields are optional
	setEventFields(vevent, eventstore.Event{
		ID:        "ev2",
		Title:     "Holiday",
		StartTime: "2024-08-20 00:00",
		EndTime:   "2024-08-22 23:59",
		IsAllDay:  true,
	})

	serialized := cal.Serialize()
	assert.Contains(t, serialized, "DTSTART;VALUE=DATE:20240820")
	assert.Contains(t, serialized, "DTEND;VALUE=DATE:20240822")
}

func TestAddSeriesEventCarriesRrule(t *testing.T) {
	cal := ics.NewCalendar()

	//nolint:exhaustruct //other fields are optional
	first := eventstore.Event{
		ID:        "occ1",
		Title:     "Standup",
		StartTime: "2024-08-20 09:00",
		EndTime:   "2024-08-20 09:30",
	}
	addSeriesEvent(cal, eventstore.RecurringRule{
		ID:        "series1",
		Rule:      "FREQ=WEEKLY;INTERVAL=1;BYDAY=TU",
		StartDate: "2024-08-20",
		EndDate:   "2025-08-20",
	}, first)

	serialized := cal.Serialize()
	assert.Contains(t, serialized, "UID:series1")
	assert.True(t, strings.Contains(
		serialized,
		"RRULE:FREQ=WEEKLY;INTERVAL=1;BYDAY=TU;UNTIL=20250820T235959",
	))
}
