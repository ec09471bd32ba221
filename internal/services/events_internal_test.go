package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"sayplan.app/pkg/eventstore"
)

func TestOccurrenceOnDateKeepsTimeOfDay(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	template := eventstore.Event{
		StartTime: "2024-08-20 09:00",
		EndTime:   "2024-08-20 10:30",
	}

	occurrence := occurrenceOnDate(template, "2024-09-03")

	assert.Equal(t, "2024-09-03 09:00", occurrence.StartTime)
	assert.Equal(t, "2024-09-03 10:30", occurrence.EndTime)
}

func TestOccurrenceOnDateKeepsDaySpan(t *testing.T) {
	// a two-night event stays a two-night event on every occurrence
	//nolint:exhaustruct //other fields are optional
	template := eventstore.Event{
		StartTime: "2024-08-20 18:00",
		EndTime:   "2024-08-22 11:00",
	}

	occurrence := occurrenceOnDate(template, "2024-09-03")

	assert.Equal(t, "2024-09-03 18:00", occurrence.StartTime)
	assert.Equal(t, "2024-09-05 11:00", occurrence.EndTime)
}

func TestOccurrenceOnDateWithoutEndTime(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	template := eventstore.Event{
		StartTime: "2024-08-20 09:00",
	}

	occurrence := occurrenceOnDate(template, "2024-09-03")

	assert.Equal(t, "2024-09-03 09:00", occurrence.StartTime)
	assert.Equal(t, "", occurrence.EndTime)
}

func TestOccurrenceOnDateAcrossMonthEnd(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	template := eventstore.Event{
		StartTime: "2024-08-30 20:00",
		EndTime:   "2024-09-01 08:00",
	}

	occurrence := occurrenceOnDate(template, "2024-12-31")

	assert.Equal(t, "2024-12-31 20:00", occurrence.StartTime)
	assert.Equal(t, "2025-01-02 08:00", occurrence.EndTime)
}
