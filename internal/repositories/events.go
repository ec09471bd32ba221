package repositories

import (
	"context"
	"encoding/json"

	"github.com/xdoubleu/essentia/v2/pkg/database"
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"sayplan.app/pkg/eventstore"
)

// EventRepository stores event rows. Start and end times are kept as text
// in the wall-clock layout, so all date comparisons in SQL are plain
// string comparisons and never pass through a timezone.
type EventRepository struct {
	db postgres.DB
}

func serializeLocation(location *eventstore.Location) (*string, error) {
	if location == nil {
		return nil, nil
	}

	bytesLocation, err := json.Marshal(location)
	if err != nil {
		return nil, err
	}

	t := string(bytesLocation)
	return &t, nil
}

func deserializeLocation(raw *string) (*eventstore.Location, error) {
	if raw == nil {
		return nil, nil
	}

	var location eventstore.Location
	if err := json.Unmarshal([]byte(*raw), &location); err != nil {
		return nil, err
	}

	return &location, nil
}

func scanEvent(row pgxRow) (*eventstore.Event, error) {
	//nolint:exhaustruct //other fields are assigned later
	event := eventstore.Event{}
	var rawLocation *string

	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.StartTime,
		&event.EndTime,
		&event.IsAllDay,
		&event.ColorCode,
		&rawLocation,
		&event.RecurringEventID,
	)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	event.Location, err = deserializeLocation(rawLocation)
	if err != nil {
		return nil, err
	}

	return &event, nil
}

type pgxRow interface {
	Scan(dest ...any) error
}

const eventColumns = `id, title, description, start_time, end_time,
			is_all_day, color_code, location, recurring_event_id`

func (repo *EventRepository) GetByID(
	ctx context.Context,
	id string,
	userID string,
) (*eventstore.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM sayplan.events
		WHERE id = $1 AND user_id = $2
	`

	return scanEvent(repo.db.QueryRow(ctx, query, id, userID))
}

func (repo *EventRepository) GetAll(
	ctx context.Context,
	userID string,
) ([]eventstore.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM sayplan.events
		WHERE user_id = $1
		ORDER BY start_time asc
	`

	return repo.queryEvents(ctx, query, userID)
}

// GetOnDate returns every event whose inclusive start-to-end date range
// contains the given date. Events without an end time only match their
// start date.
func (repo *EventRepository) GetOnDate(
	ctx context.Context,
	date string,
	userID string,
) ([]eventstore.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM sayplan.events
		WHERE user_id = $1
		AND substr(start_time, 1, 10) <= $2
		AND (
			(end_time <> '' AND $2 <= substr(end_time, 1, 10))
			OR (end_time = '' AND substr(start_time, 1, 10) = $2)
		)
		ORDER BY start_time asc
	`

	return repo.queryEvents(ctx, query, userID, date)
}

func (repo *EventRepository) GetBySeries(
	ctx context.Context,
	seriesID string,
	userID string,
) ([]eventstore.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM sayplan.events
		WHERE recurring_event_id = $2 AND user_id = $1
		ORDER BY start_time asc
	`

	return repo.queryEvents(ctx, query, userID, seriesID)
}

func (repo *EventRepository) queryEvents(
	ctx context.Context,
	query string,
	args ...any,
) ([]eventstore.Event, error) {
	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}
	defer rows.Close()

	events := []eventstore.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}

		events = append(events, *event)
	}

	if err = rows.Err(); err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return events, nil
}

func (repo *EventRepository) Create(
	ctx context.Context,
	event eventstore.Event,
	userID string,
) (*eventstore.Event, error) {
	query := `
		INSERT INTO sayplan.events (id, user_id, title, description,
		start_time, end_time, is_all_day, color_code, location,
		recurring_event_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	rawLocation, err := serializeLocation(event.Location)
	if err != nil {
		return nil, err
	}

	err = repo.db.QueryRow(
		ctx,
		query,
		event.ID,
		userID,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.IsAllDay,
		event.ColorCode,
		rawLocation,
		event.RecurringEventID,
	).Scan(&event.ID)

	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return &event, nil
}

// Update overwrites every column of one event row, including the series
// link. Passing an event without RecurringEventID detaches it from its
// series.
func (repo *EventRepository) Update(
	ctx context.Context,
	event eventstore.Event,
	userID string,
) (*eventstore.Event, error) {
	query := `
		UPDATE sayplan.events
		SET title = $3, description = $4, start_time = $5, end_time = $6,
		is_all_day = $7, color_code = $8, location = $9,
		recurring_event_id = $10
		WHERE id = $1 AND user_id = $2
	`

	rawLocation, err := serializeLocation(event.Location)
	if err != nil {
		return nil, err
	}

	result, err := repo.db.Exec(
		ctx,
		query,
		event.ID,
		userID,
		event.Title,
		event.Description,
		event.StartTime,
		event.EndTime,
		event.IsAllDay,
		event.ColorCode,
		rawLocation,
		event.RecurringEventID,
	)

	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return nil, database.ErrResourceNotFound
	}

	return &event, nil
}

// UpdateBySeries rewrites the shared fields of every event in a series.
// Each occurrence keeps its own calendar date; only the time-of-day part
// of start and end is replaced.
func (repo *EventRepository) UpdateBySeries(
	ctx context.Context,
	seriesID string,
	event eventstore.Event,
	userID string,
) error {
	query := `
		UPDATE sayplan.events
		SET title = $3, description = $4, is_all_day = $5, color_code = $6,
		location = $7,
		start_time = substr(start_time, 1, 10) || $8,
		end_time = CASE WHEN end_time = ''
			THEN ''
			ELSE substr(end_time, 1, 10) || $9
		END
		WHERE recurring_event_id = $1 AND user_id = $2
	`

	rawLocation, err := serializeLocation(event.Location)
	if err != nil {
		return err
	}

	result, err := repo.db.Exec(
		ctx,
		query,
		seriesID,
		userID,
		event.Title,
		event.Description,
		event.IsAllDay,
		event.ColorCode,
		rawLocation,
		timeOfDaySuffix(event.StartTime),
		timeOfDaySuffix(event.EndTime),
	)

	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}

// timeOfDaySuffix returns the " 15:04" part of a wall-clock timestamp,
// ready to be appended to a date.
func timeOfDaySuffix(dateTime string) string {
	if len(dateTime) <= len(eventstore.DateLayout) {
		return ""
	}
	return dateTime[len(eventstore.DateLayout):]
}

func (repo *EventRepository) Delete(
	ctx context.Context,
	id string,
	userID string,
) error {
	query := `
		DELETE FROM sayplan.events
		WHERE id = $1 AND user_id = $2
	`

	result, err := repo.db.Exec(ctx, query, id, userID)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}

// DeleteFromTime removes every event of a series starting at or after the
// given wall-clock time.
func (repo *EventRepository) DeleteFromTime(
	ctx context.Context,
	seriesID string,
	fromStartTime string,
	userID string,
) error {
	query := `
		DELETE FROM sayplan.events
		WHERE recurring_event_id = $1 AND user_id = $2
		AND start_time >= $3
	`

	result, err := repo.db.Exec(ctx, query, seriesID, userID, fromStartTime)
	if err != nil {
		return postgres.PgxErrorToHTTPError(err)
	}

	if result.RowsAffected() == 0 {
		return database.ErrResourceNotFound
	}

	return nil
}

// LastOccurrenceStart returns the start time of the latest materialized
// occurrence of a series.
func (repo *EventRepository) LastOccurrenceStart(
	ctx context.Context,
	seriesID string,
	userID string,
) (*string, error) {
	query := `
		SELECT max(start_time)
		FROM sayplan.events
		WHERE recurring_event_id = $1 AND user_id = $2
	`

	var lastStart *string
	err := repo.db.QueryRow(ctx, query, seriesID, userID).Scan(&lastStart)
	if err != nil {
		return nil, postgres.PgxErrorToHTTPError(err)
	}

	return lastStart, nil
}
