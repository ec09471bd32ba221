package eventstore

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const (
	EventsEndpoint    = "api/events"
	RecurringEndpoint = "api/recurring-events"
)

func (client client) CreateEvent(
	ctx context.Context,
	dto CreateEventDto,
) (*Event, error) {
	var event *Event
	err := client.sendRequest(
		ctx,
		http.MethodPost,
		EventsEndpoint,
		nil,
		dto,
		&event,
	)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (client client) GetEvent(ctx context.Context, id string) (*Event, error) {
	endpoint := fmt.Sprintf("%s/%s", EventsEndpoint, id)

	var event *Event
	err := client.sendRequest(ctx, http.MethodGet, endpoint, nil, nil, &event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (client client) EventsOnDate(
	ctx context.Context,
	date string,
) ([]Event, error) {
	query := url.Values{}
	query.Set("date", date)

	var events []Event
	err := client.sendRequest(
		ctx,
		http.MethodGet,
		EventsEndpoint,
		query,
		nil,
		&events,
	)
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (client client) UpdateEvent(
	ctx context.Context,
	id string,
	dto UpdateEventDto,
) (*Event, error) {
	endpoint := fmt.Sprintf("%s/%s", EventsEndpoint, id)

	var event *Event
	err := client.sendRequest(ctx, http.MethodPatch, endpoint, nil, dto, &event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func (client client) DeleteEvent(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/%s", EventsEndpoint, id)

	query := url.Values{}
	query.Set("strategy", "this")

	return client.sendRequest(ctx, http.MethodDelete, endpoint, query, nil, nil)
}

func (client client) DeleteFromEvent(ctx context.Context, id string) error {
	endpoint := fmt.Sprintf("%s/%s/following", EventsEndpoint, id)
	return client.sendRequest(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}

func (client client) DeleteSeries(ctx context.Context, seriesID string) error {
	endpoint := fmt.Sprintf("%s/%s", RecurringEndpoint, seriesID)
	return client.sendRequest(ctx, http.MethodDelete, endpoint, nil, nil, nil)
}

func (client client) UpdateSeries(
	ctx context.Context,
	seriesID string,
	dto UpdateEventDto,
) error {
	endpoint := fmt.Sprintf("%s/%s", RecurringEndpoint, seriesID)
	return client.sendRequest(ctx, http.MethodPatch, endpoint, nil, dto, nil)
}

func (client client) GetRecurringEvent(
	ctx context.Context,
	seriesID string,
) (*RecurringRule, error) {
	endpoint := fmt.Sprintf("%s/%s", RecurringEndpoint, seriesID)

	var rule *RecurringRule
	err := client.sendRequest(ctx, http.MethodGet, endpoint, nil, nil, &rule)
	if err != nil {
		return nil, err
	}

	return rule, nil
}
