package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"sayplan.app/internal/metrics"
	"sayplan.app/internal/recurrence"
	"sayplan.app/internal/repositories"
	"sayplan.app/pkg/eventstore"
)

// EventService owns event and recurring-rule persistence. Recurring rules
// are materialized eagerly: creating a series writes one event row per
// occurrence up to the rule's end date, capped at occurrenceCap rows.
type EventService struct {
	logger        *slog.Logger
	events        *repositories.EventRepository
	rules         *repositories.RecurringEventRepository
	websocket     *WebSocketService
	metrics       *metrics.Metrics
	occurrenceCap int
}

func (service *EventService) countCreated(amount int) {
	if service.metrics == nil {
		return
	}
	service.metrics.EventsCreated.Add(float64(amount))
}

func (service *EventService) GetByID(
	ctx context.Context,
	id string,
	userID string,
) (*eventstore.Event, error) {
	return service.events.GetByID(ctx, id, userID)
}

// OnDate returns the events visible on a calendar date, multi-day spans
// included, sorted for rendering.
func (service *EventService) OnDate(
	ctx context.Context,
	date string,
	userID string,
) ([]eventstore.Event, error) {
	events, err := service.events.GetOnDate(ctx, date, userID)
	if err != nil {
		return nil, err
	}

	return eventstore.SortByTime(events), nil
}

// Create stores a new event. When the payload carries a recurrence, a rule
// row is created first and one event row is written per occurrence, each
// keeping the template's time of day and day span.
func (service *EventService) Create(
	ctx context.Context,
	createEventDto eventstore.CreateEventDto,
	userID string,
) (*eventstore.Event, error) {
	template := eventFromDto(createEventDto)

	if !createEventDto.HasRecurrence() {
		template.ID = uuid.NewString()
		event, err := service.events.Create(ctx, template, userID)
		if err != nil {
			return nil, err
		}

		service.countCreated(1)
		service.notifyChanged(event.StartDate())
		return event, nil
	}

	rule, err := service.createSeries(ctx, createEventDto, userID)
	if err != nil {
		return nil, err
	}

	occurrences, err := service.materializeSeries(ctx, *rule, template, userID)
	if err != nil {
		return nil, err
	}

	service.countCreated(len(occurrences))
	if len(occurrences) == 0 {
		return &template, nil
	}

	service.notifyChanged(occurrences[0].StartDate())
	return &occurrences[0], nil
}

func (service *EventService) createSeries(
	ctx context.Context,
	createEventDto eventstore.CreateEventDto,
	userID string,
) (*eventstore.RecurringRule, error) {
	settings := recurrence.Decode(
		createEventDto.Recurring.Rule,
		referenceDate(createEventDto.Recurring.StartDate),
	)

	rule := eventstore.RecurringRule{
		ID:        uuid.NewString(),
		Rule:      createEventDto.Recurring.Rule,
		StartDate: createEventDto.Recurring.StartDate,
		EndDate: recurrence.ResolveEndDate(
			settings.Frequency,
			createEventDto.Recurring.StartDate,
			createEventDto.Recurring.EndDate,
		),
	}

	return service.rules.Create(ctx, rule, userID)
}

// materializeSeries writes one event row per occurrence date between the
// rule's bounds.
func (service *EventService) materializeSeries(
	ctx context.Context,
	rule eventstore.RecurringRule,
	template eventstore.Event,
	userID string,
) ([]eventstore.Event, error) {
	settings := recurrence.Decode(rule.Rule, referenceDate(rule.StartDate))

	dates, err := recurrence.Materialize(
		settings,
		rule.StartDate,
		rule.EndDate,
		service.occurrenceCap,
	)
	if err != nil {
		return nil, err
	}

	events := []eventstore.Event{}
	for _, date := range dates {
		occurrence := occurrenceOnDate(template, date)
		occurrence.ID = uuid.NewString()
		occurrence.RecurringEventID = &rule.ID

		created, err := service.events.Create(ctx, occurrence, userID)
		if err != nil {
			return nil, err
		}

		events = append(events, *created)
	}

	return events, nil
}

// Update rewrites one event in place. A payload without a recurrence
// detaches the event from its series; a payload with one keeps an existing
// link but never creates a new series.
func (service *EventService) Update(
	ctx context.Context,
	id string,
	updateEventDto eventstore.UpdateEventDto,
	userID string,
) (*eventstore.Event, error) {
	prev, err := service.events.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	next := eventFromDto(updateEventDto)
	next.ID = prev.ID
	if updateEventDto.HasRecurrence() {
		next.RecurringEventID = prev.RecurringEventID
	}

	updated, err := service.events.Update(ctx, next, userID)
	if err != nil {
		return nil, err
	}

	service.notifyChanged(prev.StartDate(), updated.StartDate())
	return updated, nil
}

func (service *EventService) DeleteSingle(
	ctx context.Context,
	id string,
	userID string,
) error {
	prev, err := service.events.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	err = service.events.Delete(ctx, id, userID)
	if err != nil {
		return err
	}

	service.notifyChanged(prev.StartDate())
	return nil
}

// DeleteFrom removes the given occurrence and every later one of the same
// series. A detached event degrades to a single delete.
func (service *EventService) DeleteFrom(
	ctx context.Context,
	id string,
	userID string,
) error {
	prev, err := service.events.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	if prev.RecurringEventID == nil {
		return service.DeleteSingle(ctx, id, userID)
	}

	err = service.events.DeleteFromTime(
		ctx,
		*prev.RecurringEventID,
		prev.StartTime,
		userID,
	)
	if err != nil {
		return err
	}

	service.notifyChanged(prev.StartDate())
	return nil
}

// DeleteSeries removes a rule; its events go with it through the cascade.
func (service *EventService) DeleteSeries(
	ctx context.Context,
	seriesID string,
	userID string,
) error {
	err := service.rules.Delete(ctx, seriesID, userID)
	if err != nil {
		return err
	}

	service.notifyChanged()
	return nil
}

// UpdateSeries rewrites the shared fields of every occurrence, keeping
// each occurrence's calendar date.
func (service *EventService) UpdateSeries(
	ctx context.Context,
	seriesID string,
	updateEventDto eventstore.UpdateEventDto,
	userID string,
) error {
	// the rule must exist and belong to this user
	_, err := service.rules.GetByID(ctx, seriesID, userID)
	if err != nil {
		return err
	}

	err = service.events.UpdateBySeries(
		ctx,
		seriesID,
		eventFromDto(updateEventDto),
		userID,
	)
	if err != nil {
		return err
	}

	service.notifyChanged()
	return nil
}

func (service *EventService) GetRecurringEvent(
	ctx context.Context,
	seriesID string,
	userID string,
) (*eventstore.RecurringRule, error) {
	return service.rules.GetByID(ctx, seriesID, userID)
}

func (service *EventService) GetAllRecurringEvents(
	ctx context.Context,
	userID string,
) ([]eventstore.RecurringRule, error) {
	return service.rules.GetAll(ctx, userID)
}

func (service *EventService) GetBySeries(
	ctx context.Context,
	seriesID string,
	userID string,
) ([]eventstore.Event, error) {
	return service.events.GetBySeries(ctx, seriesID, userID)
}

// ExtendMaterialized tops up every series whose materialized occurrences
// lag behind its rule's end date. The nightly job runs this.
func (service *EventService) ExtendMaterialized(ctx context.Context) {
	ownedRules, err := service.rules.ListAll(ctx)
	if err != nil {
		service.logger.Error("failed to list recurring rules", logging.ErrAttr(err))
		return
	}

	for _, owned := range ownedRules {
		err = service.extendSeries(ctx, owned.Rule, owned.UserID)
		if err != nil {
			service.logger.Error(
				"failed to extend series",
				slog.String("seriesID", owned.Rule.ID),
				logging.ErrAttr(err),
			)
		}
	}
}

func (service *EventService) extendSeries(
	ctx context.Context,
	rule eventstore.RecurringRule,
	userID string,
) error {
	lastStart, err := service.events.LastOccurrenceStart(ctx, rule.ID, userID)
	if err != nil {
		return err
	}

	existing, err := service.events.GetBySeries(ctx, rule.ID, userID)
	if err != nil {
		return err
	}

	if lastStart == nil || len(existing) == 0 {
		// every occurrence was detached or deleted, nothing to extend from
		return nil
	}

	template := existing[len(existing)-1]
	lastDate := (*lastStart)[:len(eventstore.DateLayout)]
	if lastDate >= rule.EndDate {
		return nil
	}

	settings := recurrence.Decode(rule.Rule, referenceDate(rule.StartDate))
	dates, err := recurrence.Materialize(
		settings,
		rule.StartDate,
		rule.EndDate,
		service.occurrenceCap,
	)
	if err != nil {
		return err
	}

	for _, date := range dates {
		if date <= lastDate {
			continue
		}

		occurrence := occurrenceOnDate(template, date)
		occurrence.ID = uuid.NewString()
		occurrence.RecurringEventID = &rule.ID

		_, err = service.events.Create(ctx, occurrence, userID)
		if err != nil {
			return err
		}
	}

	return nil
}

func (service *EventService) notifyChanged(dates ...string) {
	if service.websocket == nil {
		return
	}
	service.websocket.NotifyCalendarChanged(dates)
}

// eventFromDto builds an event row from a payload, without an id or a
// series link.
func eventFromDto(dto eventstore.CreateEventDto) eventstore.Event {
	//nolint:exhaustruct //id and series link are assigned by the caller
	return eventstore.Event{
		Title:       dto.Title,
		Description: dto.Description,
		StartTime:   dto.StartTime,
		EndTime:     dto.EndTime,
		IsAllDay:    dto.IsAllDay,
		ColorCode:   dto.ColorCode,
		Location:    dto.Location,
	}
}

// occurrenceOnDate shifts the template event to start on the given date.
// The time of day is kept and a multi-day template keeps its day span.
func occurrenceOnDate(template eventstore.Event, date string) eventstore.Event {
	occurrence := template
	occurrence.StartTime = date + timeOfDay(template.StartTime)

	if template.EndTime != "" {
		occurrence.EndTime = shiftDate(
			date,
			spanDays(template),
		) + timeOfDay(template.EndTime)
	}

	return occurrence
}

func timeOfDay(dateTime string) string {
	if len(dateTime) <= len(eventstore.DateLayout) {
		return ""
	}
	return dateTime[len(eventstore.DateLayout):]
}

// spanDays counts the calendar days between an event's start and end date.
func spanDays(event eventstore.Event) int {
	start, errStart := time.Parse(eventstore.DateLayout, event.StartDate())
	end, errEnd := time.Parse(eventstore.DateLayout, event.EndDate())
	if errStart != nil || errEnd != nil {
		return 0
	}

	return int(end.Sub(start).Hours() / 24) //nolint:mnd //hours per day
}

func shiftDate(date string, days int) string {
	parsed, err := time.Parse(eventstore.DateLayout, date)
	if err != nil {
		return date
	}

	return parsed.AddDate(0, 0, days).Format(eventstore.DateLayout)
}

// referenceDate parses a date for use as a weekday reference. An
// unparsable date falls back to today.
func referenceDate(date string) time.Time {
	parsed, err := time.Parse(eventstore.DateLayout, date)
	if err != nil {
		return time.Now()
	}
	return parsed
}
