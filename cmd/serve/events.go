package main

import (
	"errors"
	"net/http"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/parse"
	"sayplan.app/internal/planner"
	"sayplan.app/pkg/eventstore"
)

func (app *Application) eventsRoutes(mux *http.ServeMux) {
	mux.HandleFunc(
		"POST /api/events",
		app.services.Auth.Access(app.createEventHandler),
	)
	mux.HandleFunc(
		"GET /api/events",
		app.services.Auth.Access(app.eventsOnDateHandler),
	)
	mux.HandleFunc(
		"GET /api/events/{id}",
		app.services.Auth.Access(app.getEventHandler),
	)
	mux.HandleFunc(
		"PATCH /api/events/{id}",
		app.services.Auth.Access(app.updateEventHandler),
	)
	mux.HandleFunc(
		"PUT /api/events/{id}",
		app.services.Auth.Access(app.plannedUpdateHandler),
	)
	mux.HandleFunc(
		"DELETE /api/events/{id}",
		app.services.Auth.Access(app.deleteEventHandler),
	)
	mux.HandleFunc(
		"DELETE /api/events/{id}/following",
		app.services.Auth.Access(app.deleteFollowingHandler),
	)
	mux.HandleFunc(
		"GET /api/events/{id}/options",
		app.services.Auth.Access(app.deleteOptionsHandler),
	)
	mux.HandleFunc(
		"POST /api/events/{id}/options",
		app.services.Auth.Access(app.updateOptionsHandler),
	)
}

func (app *Application) createEventHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var createEventDto eventstore.CreateEventDto

	err := httptools.ReadJSON(r.Body, &createEventDto)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	if ok, errs := createEventDto.Validate(); !ok {
		httptools.FailedValidationResponse(w, r, errs)
		return
	}

	event, err := app.services.Events.Create(r.Context(), createEventDto, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

func (app *Application) eventsOnDateHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	date := r.URL.Query().Get("date")
	if date == "" {
		httptools.FailedValidationResponse(w, r, map[string]string{
			"date": "must be provided",
		})
		return
	}

	events, err := app.services.Events.OnDate(r.Context(), date, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, agendaForDate(events, date))
}

// agendaEventDto is one day-agenda entry: the event plus its position
// within the day, so clients can render multi-day spans.
type agendaEventDto struct {
	eventstore.Event
	Position eventstore.DayPosition `json:"position"`
}

func agendaForDate(events []eventstore.Event, date string) []agendaEventDto {
	agenda := []agendaEventDto{}
	for _, event := range eventstore.FilterForDate(events, date) {
		agenda = append(agenda, agendaEventDto{
			Event:    event,
			Position: event.PositionOn(date),
		})
	}

	return agenda
}

func (app *Application) getEventHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	event, err := app.services.Events.GetByID(r.Context(), id, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

func (app *Application) updateEventHandler(w http.ResponseWriter, r *http.Request) {
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

	event, err := app.services.Events.Update(
		r.Context(),
		id,
		updateEventDto,
		user.ID,
	)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// plannedUpdateHandler runs the full mutation plan for an edit: it
// classifies the transition against the stored event and issues the
// sequence of store calls it requires. The response always carries the
// per-step results so clients can tell how far a failed plan got.
func (app *Application) plannedUpdateHandler(w http.ResponseWriter, r *http.Request) {
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

	prev, rule, err := app.eventWithRule(r, id, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	strategy := planner.Strategy(r.URL.Query().Get("strategy"))
	transition := planner.ClassifyUpdate(*prev, updateEventDto)

	outcome, err := planner.New(app.services.StoreFor(user.ID)).Update(
		r.Context(),
		*prev,
		rule,
		updateEventDto,
		strategy,
	)

	app.countMutation(transition.String(), string(strategy), outcome)

	app.writePlanOutcome(w, r, outcome, err)
}

func (app *Application) deleteEventHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	strategy := planner.Strategy(r.URL.Query().Get("strategy"))

	// the default strategy targets just this event row
	if strategy == "" || strategy == planner.StrategyThisOnly {
		err = app.services.Events.DeleteSingle(r.Context(), id, user.ID)
		if err != nil {
			httptools.HandleError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
		return
	}

	prev, err := app.services.Events.GetByID(r.Context(), id, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	outcome, err := planner.New(app.services.StoreFor(user.ID)).Delete(
		r.Context(),
		*prev,
		strategy,
	)

	app.countMutation("delete", string(strategy), outcome)

	if err != nil {
		app.writePlanOutcome(w, r, outcome, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) deleteFollowingHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	err = app.services.Events.DeleteFrom(r.Context(), id, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// mutationOptionsDto tells a client which strategies to offer the user
// before submitting a mutation.
type mutationOptionsDto struct {
	Transition string             `json:"transition,omitempty"`
	Strategies []planner.Strategy `json:"strategies"`
}

func (app *Application) deleteOptionsHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	id, err := parse.URLParam[string](r, "id", nil)
	if err != nil {
		panic(err)
	}

	prev, err := app.services.Events.GetByID(r.Context(), id, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mutationOptionsDto{
		Strategies: planner.DeleteStrategies(*prev),
	})
}

func (app *Application) updateOptionsHandler(w http.ResponseWriter, r *http.Request) {
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

	prev, rule, err := app.eventWithRule(r, id, user.ID)
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mutationOptionsDto{
		Transition: planner.ClassifyUpdate(*prev, updateEventDto).String(),
		Strategies: planner.UpdateStrategies(*prev, rule, updateEventDto),
	})
}

func (app *Application) eventWithRule(
	r *http.Request,
	id string,
	userID string,
) (*eventstore.Event, *eventstore.RecurringRule, error) {
	prev, err := app.services.Events.GetByID(r.Context(), id, userID)
	if err != nil {
		return nil, nil, err
	}

	var rule *eventstore.RecurringRule
	if prev.RecurringEventID != nil {
		rule, err = app.services.Events.GetRecurringEvent(
			r.Context(),
			*prev.RecurringEventID,
			userID,
		)
		if err != nil {
			return nil, nil, err
		}
	}

	return prev, rule, nil
}

// planOutcomeDto is the planner response body: the applied step results
// and, on success, the surviving event.
type planOutcomeDto struct {
	Steps            []planner.StepResult `json:"steps"`
	Event            *eventstore.Event    `json:"event,omitempty"`
	PartiallyApplied bool                 `json:"partiallyApplied"`
	Error            string               `json:"error,omitempty"`
}

func (app *Application) writePlanOutcome(
	w http.ResponseWriter,
	r *http.Request,
	outcome *planner.Outcome,
	err error,
) {
	if err == nil {
		writeJSON(w, http.StatusOK, planOutcomeDto{
			Steps:            outcome.Steps,
			Event:            outcome.Event,
			PartiallyApplied: false,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, planner.ErrStrategyRequired),
		errors.Is(err, planner.ErrStrategyNotAllowed),
		errors.Is(err, planner.ErrUnknownStrategy),
		errors.Is(err, planner.ErrMissingRule):
		status = http.StatusConflict
	}

	writeJSON(w, status, planOutcomeDto{
		Steps:            outcome.Steps,
		Event:            outcome.Event,
		PartiallyApplied: outcome.PartiallyApplied(),
		Error:            err.Error(),
	})
}

func (app *Application) countMutation(
	transition string,
	strategy string,
	outcome *planner.Outcome,
) {
	if app.metrics == nil {
		return
	}

	app.metrics.MutationsTotal.WithLabelValues(transition, strategy).Inc()

	for _, step := range outcome.Steps {
		if !step.Succeeded {
			app.metrics.FailedStepsTotal.WithLabelValues(string(step.Kind)).Inc()
		}
	}
}
