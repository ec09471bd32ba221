package main

import (
	"net/http"
)

func (app *Application) wsRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/ws", app.services.WebSocket.Handler())
}
