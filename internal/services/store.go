package services

import (
	"context"

	"sayplan.app/pkg/eventstore"
)

// localStore exposes the event service as an eventstore.Client bound to
// one user, so the mutation planner can run in-process against the same
// storage the HTTP API serves.
type localStore struct {
	events *EventService
	userID string
}

// StoreFor returns an event store view scoped to the given user.
func (services *Services) StoreFor(userID string) eventstore.Client {
	return &localStore{
		events: services.Events,
		userID: userID,
	}
}

func (store *localStore) CreateEvent(
	ctx context.Context,
	createEventDto eventstore.CreateEventDto,
) (*eventstore.Event, error) {
	return store.events.Create(ctx, createEventDto, store.userID)
}

func (store *localStore) GetEvent(
	ctx context.Context,
	id string,
) (*eventstore.Event, error) {
	return store.events.GetByID(ctx, id, store.userID)
}

func (store *localStore) EventsOnDate(
	ctx context.Context,
	date string,
) ([]eventstore.Event, error) {
	return store.events.OnDate(ctx, date, store.userID)
}

func (store *localStore) UpdateEvent(
	ctx context.Context,
	id string,
	updateEventDto eventstore.UpdateEventDto,
) (*eventstore.Event, error) {
	return store.events.Update(ctx, id, updateEventDto, store.userID)
}

func (store *localStore) DeleteEvent(ctx context.Context, id string) error {
	return store.events.DeleteSingle(ctx, id, store.userID)
}

func (store *localStore) DeleteFromEvent(ctx context.Context, id string) error {
	return store.events.DeleteFrom(ctx, id, store.userID)
}

func (store *localStore) DeleteSeries(ctx context.Context, seriesID string) error {
	return store.events.DeleteSeries(ctx, seriesID, store.userID)
}

func (store *localStore) UpdateSeries(
	ctx context.Context,
	seriesID string,
	updateEventDto eventstore.UpdateEventDto,
) error {
	return store.events.UpdateSeries(ctx, seriesID, updateEventDto, store.userID)
}

func (store *localStore) GetRecurringEvent(
	ctx context.Context,
	seriesID string,
) (*eventstore.RecurringRule, error) {
	return store.events.GetRecurringEvent(ctx, seriesID, store.userID)
}
