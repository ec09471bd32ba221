package recurrence_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"sayplan.app/internal/recurrence"
)

// Tuesday
var reference = time.Date(2024, 8, 20, 0, 0, 0, 0, time.UTC) //nolint:gochecknoglobals //needed for tests

func TestEncode(t *testing.T) {
	assert.Equal(t,
		"FREQ=DAILY;INTERVAL=1",
		recurrence.Encode(recurrence.Settings{
			Frequency: recurrence.Daily,
			Interval:  1,
			Weekdays:  nil,
		}),
	)

	assert.Equal(t,
		"FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE,SA",
		recurrence.Encode(recurrence.Settings{
			Frequency: recurrence.Weekly,
			Interval:  2,
			Weekdays: []time.Weekday{
				time.Saturday,
				time.Monday,
				time.Wednesday,
			},
		}),
	)

	// weekday sets are ignored outside weekly rules
	assert.Equal(t,
		"FREQ=MONTHLY;INTERVAL=3",
		recurrence.Encode(recurrence.Settings{
			Frequency: recurrence.Monthly,
			Interval:  3,
			Weekdays:  []time.Weekday{time.Monday},
		}),
	)
}

func TestRoundTrip(t *testing.T) {
	settings := []recurrence.Settings{
		{Frequency: recurrence.Daily, Interval: 1, Weekdays: nil},
		{Frequency: recurrence.Monthly, Interval: 6, Weekdays: nil},
		{Frequency: recurrence.Yearly, Interval: 1, Weekdays: nil},
		{
			Frequency: recurrence.Weekly,
			Interval:  2,
			Weekdays:  []time.Weekday{time.Sunday, time.Saturday},
		},
		{
			Frequency: recurrence.Weekly,
			Interval:  1,
			Weekdays: []time.Weekday{
				time.Monday,
				time.Wednesday,
				time.Friday,
			},
		},
	}

	for _, s := range settings {
		decoded := recurrence.Decode(recurrence.Encode(s), reference)
		assert.Equal(t, s.Frequency, decoded.Frequency)
		assert.Equal(t, s.Interval, decoded.Interval)
		if s.Frequency == recurrence.Weekly {
			assert.Equal(t, s.Weekdays, decoded.Weekdays)
		}
	}
}

// Decoding garbage yields defaults, never an error.
func TestDecodeMalformed(t *testing.T) {
	for _, rule := range []string{
		"",
		"garbage",
		"FREQ=",
		"FREQ=SOMETIMES",
		"INTERVAL=abc",
		"FREQ=WEEKLY;INTERVAL=;BYDAY=",
		";;;=;;",
	} {
		settings := recurrence.Decode(rule, reference)
		assert.Equal(t, recurrence.Weekly, settings.Frequency, rule)
		assert.Equal(t, 1, settings.Interval, rule)
		assert.Equal(t, []time.Weekday{time.Tuesday}, settings.Weekdays, rule)
	}
}

func TestDecodeUnknownDayCode(t *testing.T) {
	settings := recurrence.Decode("FREQ=WEEKLY;INTERVAL=1;BYDAY=XX,WE", reference)

	// unknown codes fall back to Sunday
	assert.Equal(t, []time.Weekday{time.Sunday, time.Wednesday}, settings.Weekdays)
}

func TestDecodeBoundaryWeekdays(t *testing.T) {
	settings := recurrence.Decode("FREQ=WEEKLY;INTERVAL=1;BYDAY=SA,SU", reference)
	assert.Equal(t, []time.Weekday{time.Sunday, time.Saturday}, settings.Weekdays)
}

func TestDecodeDefaultsWeekdayToReference(t *testing.T) {
	settings := recurrence.Decode("FREQ=WEEKLY;INTERVAL=2", reference)
	assert.Equal(t, []time.Weekday{time.Tuesday}, settings.Weekdays)

	sunday := time.Date(2024, 8, 18, 0, 0, 0, 0, time.UTC)
	settings = recurrence.Decode("FREQ=WEEKLY;INTERVAL=2", sunday)
	assert.Equal(t, []time.Weekday{time.Sunday}, settings.Weekdays)
}

// Non-positive intervals are passed through as-is by the codec; clamping
// is unspecified upstream. This test documents the current behavior rather
// than asserting a policy.
func TestDecodeIntervalPassThrough(t *testing.T) {
	assert.Equal(t, 0, recurrence.Decode("FREQ=DAILY;INTERVAL=0", reference).Interval)
	assert.Equal(t, -2, recurrence.Decode("FREQ=DAILY;INTERVAL=-2", reference).Interval)
}

func TestResolveEndDate(t *testing.T) {
	assert.Equal(t,
		"2025-08-20",
		recurrence.ResolveEndDate(recurrence.Daily, "2024-08-20", ""),
	)
	assert.Equal(t,
		"2025-08-20",
		recurrence.ResolveEndDate(recurrence.Weekly, "2024-08-20", ""),
	)
	assert.Equal(t,
		"2025-08-20",
		recurrence.ResolveEndDate(recurrence.Monthly, "2024-08-20", ""),
	)
	assert.Equal(t,
		"2029-08-20",
		recurrence.ResolveEndDate(recurrence.Yearly, "2024-08-20", ""),
	)

	// explicit end dates win
	assert.Equal(t,
		"2024-12-31",
		recurrence.ResolveEndDate(recurrence.Daily, "2024-08-20", "2024-12-31"),
	)
}

func TestResolveEndDateLeapDay(t *testing.T) {
	assert.Equal(t,
		"2025-03-01",
		recurrence.ResolveEndDate(recurrence.Weekly, "2024-02-29", ""),
	)
}
