package places_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"sayplan.app/pkg/places"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "city hall", r.URL.Query().Get("q"))
			assert.Equal(t, "json", r.URL.Query().Get("format"))

			w.Header().Set("Content-Type", "application/json")
			//nolint:errcheck //test server
			w.Write([]byte(`[
				{"display_name": "Seoul City Hall", "lat": "37.5663", "lon": "126.9779"},
				{"display_name": "broken", "lat": "not-a-number", "lon": "0"}
			]`))
		}),
	)
	defer server.Close()

	client := places.New(server.URL)

	results, err := client.Search(context.Background(), "city hall")
	assert.Nil(t, err)

	// unparsable coordinates are skipped, not surfaced
	assert.Len(t, results, 1)
	assert.Equal(t, "Seoul City Hall", results[0].Address)
	assert.InDelta(t, 37.5663, results[0].Latitude, 0.0001)
	assert.InDelta(t, 126.9779, results[0].Longitude, 0.0001)
}

func TestSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}),
	)
	defer server.Close()

	client := places.New(server.URL)

	_, err := client.Search(context.Background(), "anywhere")
	assert.NotNil(t, err)
}

func TestDistance(t *testing.T) {
	// Seoul City Hall to Busan Station, roughly 325 km.
	d := places.Distance(37.5663, 126.9779, 35.1151, 129.0403)
	assert.InDelta(t, 325, d, 10)

	assert.Equal(t, 0.0, places.Distance(37.5663, 126.9779, 37.5663, 126.9779))
}
