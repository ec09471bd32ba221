package main

import (
	"net/http"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

func (app *Application) calendarRoutes(mux *http.ServeMux) {
	mux.HandleFunc(
		"GET /api/calendar.ics",
		app.services.Auth.Access(app.calendarFeedHandler),
	)
}

// calendarFeedHandler serves the user's calendar as an iCalendar feed for
// external calendar apps.
func (app *Application) calendarFeedHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	cal, err := app.services.Events.BuildCalendar(r.Context(), user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar")
	_, _ = w.Write([]byte(cal.Serialize()))
}
