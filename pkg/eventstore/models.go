package eventstore

import (
	"slices"
	"strings"
)

// All event times are local wall-clock values without a timezone. They are
// compared as strings, which for these fixed layouts is equivalent to
// chronological order. Parsing them through a timezone-aware constructor
// would shift calendar dates for users outside UTC, so nothing in this
// package ever does that.
const (
	DateTimeLayout = "2006-01-02 15:04"
	DateLayout     = "2006-01-02"

	// Sentinel times carried by all-day events.
	AllDayStartTime = "00:00"
	AllDayEndTime   = "23:59"
)

// ColorPalette is the fixed set of event colors. Membership in the palette
// is the only invariant on ColorCode.
var ColorPalette = []string{
	"#FF6B6B",
	"#FFA94D",
	"#FFD43B",
	"#69DB7C",
	"#38D9A9",
	"#4DABF7",
	"#9775FA",
	"#F783AC",
}

func IsPaletteColor(code string) bool {
	return slices.Contains(ColorPalette, code)
}

type Location struct {
	NameEn    *string `json:"nameEn,omitempty"`
	NameKo    *string `json:"nameKo,omitempty"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DisplayName falls back between the localized names and the address.
func (l Location) DisplayName() string {
	if l.NameEn != nil && *l.NameEn != "" {
		return *l.NameEn
	}
	if l.NameKo != nil && *l.NameKo != "" {
		return *l.NameKo
	}
	return l.Address
}

// Event is one occurrence as stored by the event store. Events generated
// from a recurring rule carry the rule's id in RecurringEventID.
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      *string   `json:"description,omitempty"`
	StartTime        string    `json:"startTime"`
	EndTime          string    `json:"endTime"`
	IsAllDay         bool      `json:"isAllDay"`
	ColorCode        string    `json:"colorCode"`
	Location         *Location `json:"location,omitempty"`
	RecurringEventID *string   `json:"recurringEventId,omitempty"`
}

// RecurringRule bounds a series of generated events. EndDate is always
// resolved to a concrete date before the rule is persisted.
type RecurringRule struct {
	ID        string `json:"id"`
	Rule      string `json:"rule"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// StartDate returns the calendar-date component of StartTime.
func (e Event) StartDate() string {
	if len(e.StartTime) < len(DateLayout) {
		return e.StartTime
	}
	return e.StartTime[:len(DateLayout)]
}

// EndDate returns the calendar-date component of EndTime.
func (e Event) EndDate() string {
	if len(e.EndTime) < len(DateLayout) {
		return e.EndTime
	}
	return e.EndTime[:len(DateLayout)]
}

// IsOnDate reports whether the event starts on the given calendar date.
func (e Event) IsOnDate(date string) bool {
	return e.StartDate() == date
}

// IsOnDateIncludingSpan reports whether the date falls within the inclusive
// range of the event's start and end calendar dates. Events without an end
// time degrade to IsOnDate.
func (e Event) IsOnDateIncludingSpan(date string) bool {
	if e.EndTime == "" {
		return e.IsOnDate(date)
	}
	return e.StartDate() <= date && date <= e.EndDate()
}

// DayPosition classifies a date relative to a multi-day event for rendering.
type DayPosition struct {
	IsStart        bool `json:"isStart"`
	IsEnd          bool `json:"isEnd"`
	IsContinuation bool `json:"isContinuation"`
}

// PositionOn classifies the given date as the event's start, end or a
// continuation day. For a single-day event both IsStart and IsEnd hold on
// its date. All three are false when the date is outside the event's span.
func (e Event) PositionOn(date string) DayPosition {
	pos := DayPosition{
		IsStart: e.IsOnDate(date),
		IsEnd:   e.EndTime != "" && e.EndDate() == date,
	}
	pos.IsContinuation = !pos.IsStart && !pos.IsEnd && e.IsOnDateIncludingSpan(date)
	return pos
}

// FilterForDate returns the events active on the given calendar date,
// including multi-day events that merely span it.
func FilterForDate(events []Event, date string) []Event {
	result := []Event{}
	for _, event := range events {
		if event.IsOnDateIncludingSpan(date) {
			result = append(result, event)
		}
	}
	return result
}

// SortByTime orders events for a day agenda: all-day events first, then
// ascending on the raw start-time string. The fixed layout makes the string
// order chronological, so no parsing is involved.
func SortByTime(events []Event) []Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		if a.IsAllDay != b.IsAllDay {
			if a.IsAllDay {
				return -1
			}
			return 1
		}
		return strings.Compare(a.StartTime, b.StartTime)
	})
	return sorted
}
