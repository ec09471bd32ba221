package services

import (
	"log/slog"

	"sayplan.app/internal/auth"
	"sayplan.app/internal/config"
	"sayplan.app/internal/metrics"
	"sayplan.app/internal/repositories"
	"sayplan.app/pkg/places"
)

type Services struct {
	Auth      auth.Service
	Events    *EventService
	Places    *PlaceService
	WebSocket *WebSocketService
}

func New(
	logger *slog.Logger,
	config config.Config,
	repositories *repositories.Repositories,
	placesClient places.Client,
	authService auth.Service,
	metrics *metrics.Metrics,
) *Services {
	websocket := NewWebSocketService(logger, []string{config.WebURL})

	events := &EventService{
		logger:        logger,
		events:        repositories.Events,
		rules:         repositories.Rules,
		websocket:     websocket,
		metrics:       metrics,
		occurrenceCap: config.OccurrenceCap,
	}

	placeService := &PlaceService{
		client: placesClient,
	}

	return &Services{
		Auth:      authService,
		Events:    events,
		Places:    placeService,
		WebSocket: websocket,
	}
}
