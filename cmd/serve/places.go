package main

import (
	"net/http"
	"strconv"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"sayplan.app/pkg/places"
)

func (app *Application) placesRoutes(mux *http.ServeMux) {
	mux.HandleFunc(
		"GET /api/places",
		app.services.Auth.Access(app.searchPlacesHandler),
	)
}

// searchPlacesHandler looks up places for the location picker. With lat
// and lon query parameters the results are sorted by proximity.
func (app *Application) searchPlacesHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httptools.FailedValidationResponse(w, r, map[string]string{
			"q": "must be provided",
		})
		return
	}

	var near *places.Place
	lat, errLat := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, errLon := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if errLat == nil && errLon == nil {
		//nolint:exhaustruct //only the coordinate is needed
		near = &places.Place{
			Latitude:  lat,
			Longitude: lon,
		}
	}

	results, err := app.services.Places.Search(r.Context(), query, near)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}
