package eventstore

import (
	"context"
)

// Client is the event store contract. The HTTP client in this package and
// the serve binary's in-process store both implement it; the mutation
// planner only ever talks to this interface.
type Client interface {
	CreateEvent(ctx context.Context, dto CreateEventDto) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	EventsOnDate(ctx context.Context, date string) ([]Event, error)

	// UpdateEvent updates a single event in place. When the payload carries
	// no recurrence the event is detached from its series, if it had one.
	UpdateEvent(ctx context.Context, id string, dto UpdateEventDto) (*Event, error)

	// DeleteEvent removes one event, leaving the rest of its series intact.
	DeleteEvent(ctx context.Context, id string) error

	// DeleteFromEvent removes the given occurrence and every later
	// occurrence of its series.
	DeleteFromEvent(ctx context.Context, id string) error

	// DeleteSeries removes every occurrence sharing the series id, and the
	// rule itself.
	DeleteSeries(ctx context.Context, seriesID string) error

	// UpdateSeries bulk-updates the non-recurrence fields of every
	// occurrence in the series.
	UpdateSeries(ctx context.Context, seriesID string, dto UpdateEventDto) error

	GetRecurringEvent(ctx context.Context, seriesID string) (*RecurringRule, error)
}
