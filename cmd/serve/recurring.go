package main

import (
	"net/http"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/parse"
	"sayplan.app/pkg/eventstore"
)

func (app *Application) recurringRoutes(mux *http.ServeMux) {
	mux.HandleFunc(
		"GET /api/recurring-events",
		app.services.Auth.Access(app.listRecurringHandler),
	)
	mux.HandleFunc(
		"GET /api/recurring-events/{id}",
		app.services.Auth.Access(app.getRecurringHandler),
	)
	mux.HandleFunc(
		"PATCH /api/recurring-events/{id}",
		app.services.Auth.Access(app.updateRecurringHandler),
	)
	mux.HandleFunc(
		"DELETE /api/recurring-events/{id}",
		app.services.Auth.Access(app.deleteRecurringHandler),
	)
}

func (app *Application) listRecurringHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	rules, err := app.services.Events.GetAllRecurringEvents(r.Context(), user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rules)
}

func (app *Application) getRecurringHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	rule, err := app.services.Events.GetRecurringEvent(r.Context(), id, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// updateRecurringHandler rewrites the shared fields of every occurrence
// of one series. Recurrence pattern changes go through the planner
// endpoints instead.
func (app *Application) updateRecurringHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	var updateEventDto eventstore.UpdateEventDto

	err = httptools.ReadJSON(r.Body, &updateEventDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	if ok, errs := updateEventDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	err = app.services.Events.UpdateSeries(
		r.Context(),
		id,
		updateEventDto,
		user.ID,
	)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) deleteRecurringHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	err = app.services.Events.DeleteSeries(r.Context(), id, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
