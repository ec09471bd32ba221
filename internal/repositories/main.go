package repositories

import (
	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
)

type Repositories struct {
	Events *EventRepository
	Rules  *RecurringEventRepository
}

func New(db postgres.DB) *Repositories {
	events := &EventRepository{db: db}
	rules := &RecurringEventRepository{db: db}

	return &Repositories{
		Events: events,
		Rules:  rules,
	}
}
