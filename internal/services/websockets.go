package services

import (
	"context"
	"log/slog"
	"net/http"

	wstools "github.com/xdoubleu/essentia/v2/pkg/communication/wstools"
	"sayplan.app/internal/dtos"
)

const calendarTopic = "calendar"

// WebSocketService pushes change notifications to connected calendar
// views so they refetch affected dates.
type WebSocketService struct {
	handler  *wstools.WebSocketHandler[dtos.SubscribeMessageDto]
	calendar *wstools.Topic
}

func NewWebSocketService(
	logger *slog.Logger,
	allowedOrigins []string,
) *WebSocketService {
	service := WebSocketService{
		handler:  nil,
		calendar: nil,
	}

	handler := wstools.CreateWebSocketHandler[dtos.SubscribeMessageDto](
		logger,
		1,
		100, //nolint:mnd //no magic number
	)

	service.handler = &handler

	topic, err := service.handler.AddTopic(
		calendarTopic,
		allowedOrigins,
		func(_ context.Context, _ *wstools.Topic) (any, error) {
			return dtos.CalendarChangedDto{Dates: []string{}}, nil
		},
	)
	if err != nil {
		panic(err)
	}
	service.calendar = topic

	return &service
}

func (service *WebSocketService) Handler() http.HandlerFunc {
	return service.handler.Handler()
}

// NotifyCalendarChanged tells subscribers which dates changed. An empty
// list means the whole calendar should be refetched.
func (service *WebSocketService) NotifyCalendarChanged(dates []string) {
	service.calendar.EnqueueEvent(dtos.CalendarChangedDto{
		Dates: dates,
	})
}
