package eventstore_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"sayplan.app/pkg/eventstore"
)

func spanningEvent(start, end string) eventstore.Event {
	//nolint:exhaustruct //other fields are optional
	return eventstore.Event{
		ID:        "123",
		Title:     "Trip",
		StartTime: start,
		EndTime:   end,
	}
}

func TestIsOnDate(t *testing.T) {
	event := spanningEvent("2024-08-20 14:00", "2024-08-22 10:00")

	assert.True(t, event.IsOnDate("2024-08-20"))
	assert.False(t, event.IsOnDate("2024-08-21"))
	assert.False(t, event.IsOnDate("2024-08-22"))
}

func TestIsOnDateIncludingSpan(t *testing.T) {
	event := spanningEvent("2024-08-20 14:00", "2024-08-22 10:00")

	assert.False(t, event.IsOnDateIncludingSpan("2024-08-19"))
	assert.True(t, event.IsOnDateIncludingSpan("2024-08-20"))
	assert.True(t, event.IsOnDateIncludingSpan("2024-08-21"))
	assert.True(t, event.IsOnDateIncludingSpan("2024-08-22"))
	assert.False(t, event.IsOnDateIncludingSpan("2024-08-23"))
}

func TestIsOnDateIncludingSpanWithoutEnd(t *testing.T) {
	event := spanningEvent("2024-08-20 14:00", "")

	assert.True(t, event.IsOnDateIncludingSpan("2024-08-20"))
	assert.False(t, event.IsOnDateIncludingSpan("2024-08-21"))
}

func TestPositionOnSpan(t *testing.T) {
	event := spanningEvent("2024-08-20 14:00", "2024-08-22 10:00")

	assert.Equal(t,
		eventstore.DayPosition{IsStart: true, IsEnd: false, IsContinuation: false},
		event.PositionOn("2024-08-20"),
	)
	assert.Equal(t,
		eventstore.DayPosition{IsStart: false, IsEnd: false, IsContinuation: true},
		event.PositionOn("2024-08-21"),
	)
	assert.Equal(t,
		eventstore.DayPosition{IsStart: false, IsEnd: true, IsContinuation: false},
		event.PositionOn("2024-08-22"),
	)
	assert.Equal(t,
		eventstore.DayPosition{IsStart: false, IsEnd: false, IsContinuation: false},
		event.PositionOn("2024-08-23"),
	)
}

func TestPositionOnSingleDay(t *testing.T) {
	event := spanningEvent("2024-08-20 09:00", "2024-08-20 10:00")

	pos := event.PositionOn("2024-08-20")
	assert.True(t, pos.IsStart)
	assert.True(t, pos.IsEnd)
	assert.False(t, pos.IsContinuation)
}

// Exactly one of start/end/continuation holds on every spanned day of a
// multi-day event, and none outside the span.
func TestPositionExclusivity(t *testing.T) {
	event := spanningEvent("2024-08-05 23:00", "2024-08-15 01:00")

	for day := 1; day <= 20; day++ {
		date := fmt.Sprintf("2024-08-%02d", day)
		pos := event.PositionOn(date)

		count := 0
		for _, b := range []bool{pos.IsStart, pos.IsEnd, pos.IsContinuation} {
			if b {
				count++
			}
		}

		if event.IsOnDateIncludingSpan(date) {
			assert.Equal(t, 1, count, date)
		} else {
			assert.Equal(t, 0, count, date)
		}
	}
}

func TestFilterForDate(t *testing.T) {
	events := []eventstore.Event{
		spanningEvent("2024-08-20 14:00", "2024-08-22 10:00"),
		spanningEvent("2024-08-21 09:00", "2024-08-21 10:00"),
		spanningEvent("2024-08-23 09:00", "2024-08-23 10:00"),
	}

	filtered := eventstore.FilterForDate(events, "2024-08-21")
	assert.Len(t, filtered, 2)

	filtered = eventstore.FilterForDate(events, "2024-08-24")
	assert.Empty(t, filtered)
}

func TestSortByTime(t *testing.T) {
	//nolint:exhaustruct //other fields are optional
	events := []eventstore.Event{
		{ID: "timed-late", StartTime: "2024-08-20 14:00"},
		{ID: "all-day", StartTime: "2024-08-20 00:00", IsAllDay: true},
		{ID: "timed-early", StartTime: "2024-08-20 09:00"},
	}

	sorted := eventstore.SortByTime(events)

	assert.Equal(t, "all-day", sorted[0].ID)
	assert.Equal(t, "timed-early", sorted[1].ID)
	assert.Equal(t, "timed-late", sorted[2].ID)

	// input order untouched
	assert.Equal(t, "timed-late", events[0].ID)
}

func TestIsPaletteColor(t *testing.T) {
	assert.Len(t, eventstore.ColorPalette, 8)
	assert.True(t, eventstore.IsPaletteColor(eventstore.ColorPalette[0]))
	assert.False(t, eventstore.IsPaletteColor("#000000"))
}

func TestLocationDisplayName(t *testing.T) {
	nameEn := "City Hall"
	nameKo := "시청"

	loc := eventstore.Location{
		NameEn:    &nameEn,
		NameKo:    &nameKo,
		Address:   "110 Sejong-daero",
		Latitude:  37.5663,
		Longitude: 126.9779,
	}
	assert.Equal(t, "City Hall", loc.DisplayName())

	loc.NameEn = nil
	assert.Equal(t, "시청", loc.DisplayName())

	loc.NameKo = nil
	assert.Equal(t, "110 Sejong-daero", loc.DisplayName())
}
