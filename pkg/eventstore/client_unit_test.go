package eventstore_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"sayplan.app/pkg/eventstore"
)

type recordedRequest struct {
	method string
	path   string
	query  string
	cookie string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response any) (*httptest.Server, *recordedRequest) {
	t.Helper()

	recorded := &recordedRequest{}

	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			recorded.method = r.Method
			recorded.path = r.URL.Path
			recorded.query = r.URL.RawQuery

			if cookie, err := r.Cookie("accessToken"); err == nil {
				recorded.cookie = cookie.Value
			}

			if r.Body != nil {
				//nolint:errcheck //empty bodies are fine here
				json.NewDecoder(r.Body).Decode(&recorded.body)
			}

			w.WriteHeader(status)
			if response != nil {
				//nolint:errcheck //test server
				json.NewEncoder(w).Encode(response)
			}
		}),
	)
	t.Cleanup(server.Close)

	return server, recorded
}

func TestCreateEvent(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	server, recorded := newTestServer(t, http.StatusCreated, eventstore.Event{
		ID:    "123",
		Title: "Lunch",
	})

	client := eventstore.New(server.URL, "token")

	//nolint:exhaustruct //other fields are optional
	event, err := client.CreateEvent(context.Background(), eventstore.CreateEventDto{
		Title:     "Lunch",
		StartTime: "2024-08-20 12:00",
		EndTime:   "2024-08-20 13:00",
		ColorCode: eventstore.ColorPalette[0],
	})

	assert.Nil(t, err)
	assert.Equal(t, "123", event.ID)
	assert.Equal(t, http.MethodPost, recorded.method)
	assert.Equal(t, "/api/events", recorded.path)
	assert.Equal(t, "token", recorded.cookie)
	assert.Equal(t, "Lunch", recorded.body["title"])
}

func TestDeleteEventTargetsSingleOccurrence(t *testing.T) {
	server, recorded := newTestServer(t, http.StatusNoContent, nil)

	client := eventstore.New(server.URL, "token")
	err := client.DeleteEvent(context.Background(), "123")

	assert.Nil(t, err)
	assert.Equal(t, http.MethodDelete, recorded.method)
	assert.Equal(t, "/api/events/123", recorded.path)
	assert.Equal(t, "strategy=this", recorded.query)
}

func TestDeleteFromEvent(t *testing.T) {
	server, recorded := newTestServer(t, http.StatusNoContent, nil)

	client := eventstore.New(server.URL, "token")
	err := client.DeleteFromEvent(context.Background(), "123")

	assert.Nil(t, err)
	assert.Equal(t, "/api/events/123/following", recorded.path)
}

func TestSeriesEndpoints(t *testing.T) {
	server, recorded := newTestServer(t, http.StatusOK, eventstore.RecurringRule{
		ID:        "abc",
		Rule:      "FREQ=WEEKLY;INTERVAL=1",
		StartDate: "2024-08-20",
		EndDate:   "2025-08-20",
	})

	client := eventstore.New(server.URL, "token")

	rule, err := client.GetRecurringEvent(context.Background(), "abc")
	assert.Nil(t, err)
	assert.Equal(t, "FREQ=WEEKLY;INTERVAL=1", rule.Rule)
	assert.Equal(t, "/api/recurring-events/abc", recorded.path)

	err = client.DeleteSeries(context.Background(), "abc")
	assert.Nil(t, err)
	assert.Equal(t, http.MethodDelete, recorded.method)
}

func TestClientSurfacesErrorStatus(t *testing.T) {
	server, _ := newTestServer(t, http.StatusInternalServerError, nil)

	client := eventstore.New(server.URL, "token")

	_, err := client.GetEvent(context.Background(), "123")
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestValidateCreateEventDto(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	dto := eventstore.CreateEventDto{
		Title:     "Lunch",
		StartTime: "2024-08-20 12:00",
		EndTime:   "2024-08-20 13:00",
		ColorCode: eventstore.ColorPalette[2],
	}

	ok, errs := dto.Validate()
	assert.True(t, ok)
	assert.Empty(t, errs)

	dto.Title = ""
	dto.ColorCode = "#123456"
	ok, errs = dto.Validate()
	assert.False(t, ok)
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "colorCode")
}

func TestHasRecurrence(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	dto := eventstore.CreateEventDto{Title: "Standup"}
	assert.False(t, dto.HasRecurrence())

	dto.Recurring = &eventstore.RecurringRuleDto{
		Rule:      "FREQ=DAILY;INTERVAL=1",
		StartDate: "2024-08-20",
		EndDate:   "",
	}
	assert.True(t, dto.HasRecurrence())

	dto.Recurring.StartDate = ""
	assert.False(t, dto.HasRecurrence())
}
