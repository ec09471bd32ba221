// Package recurrence encodes and decodes the restricted recurrence rules
// SayPlan supports (a FREQ/INTERVAL/BYDAY subset of RFC 5545) and turns
// them into concrete occurrence dates.
package recurrence

import (
	"slices"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

// dayCodes maps time.Weekday (0 = Sunday) to the two-letter BYDAY code.
var dayCodes = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// Settings is the structured form of a rule. Weekdays is only meaningful
// for weekly rules and is kept sorted ascending.
type Settings struct {
	Frequency Frequency
	Interval  int
	Weekdays  []time.Weekday
}

// Encode renders settings as a ";"-joined key=value rule string, e.g.
// "FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE". It performs no validation; the
// interval is emitted as given.
func Encode(settings Settings) string {
	var sb strings.Builder

	sb.WriteString("FREQ=")
	sb.WriteString(string(settings.Frequency))
	sb.WriteString(";INTERVAL=")
	sb.WriteString(strconv.Itoa(settings.Interval))

	if settings.Frequency == Weekly && len(settings.Weekdays) > 0 {
		codes := make([]string, 0, len(settings.Weekdays))
		for _, day := range sortedWeekdays(settings.Weekdays) {
			codes = append(codes, dayCodes[day%7])
		}

		sb.WriteString(";BYDAY=")
		sb.WriteString(strings.Join(codes, ","))
	}

	return sb.String()
}

// Decode parses a rule string back into settings. It never fails: every
// missing or unparsable field falls back to its default instead. FREQ
// defaults to WEEKLY, INTERVAL to 1, and for weekly rules without a BYDAY
// the weekday set defaults to the reference date's weekday (the date the
// rule is being edited against).
func Decode(rule string, reference time.Time) Settings {
	fields := map[string]string{}
	for _, part := range strings.Split(rule, ";") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		fields[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	settings := Settings{
		Frequency: Weekly,
		Interval:  1,
		Weekdays:  nil,
	}

	switch Frequency(fields["FREQ"]) {
	case Daily, Weekly, Monthly, Yearly:
		settings.Frequency = Frequency(fields["FREQ"])
	}

	if interval, err := strconv.Atoi(fields["INTERVAL"]); err == nil {
		// 0 and negative intervals pass through untouched; see the
		// interval test for the documented behavior.
		settings.Interval = interval
	}

	if settings.Frequency != Weekly {
		return settings
	}

	byDay, ok := fields["BYDAY"]
	if !ok || byDay == "" {
		settings.Weekdays = []time.Weekday{reference.Weekday()}
		return settings
	}

	for _, code := range strings.Split(byDay, ",") {
		day := time.Sunday
		if idx := slices.Index(dayCodes[:], strings.ToUpper(strings.TrimSpace(code))); idx >= 0 {
			day = time.Weekday(idx)
		}
		if !slices.Contains(settings.Weekdays, day) {
			settings.Weekdays = append(settings.Weekdays, day)
		}
	}
	slices.Sort(settings.Weekdays)

	return settings
}

// ResolveEndDate fills in an absent series end date. Yearly rules get a
// five-year horizon, everything else one year; an explicit end date is
// returned unchanged. Without a horizon a daily rule would generate an
// impractically large series, while a yearly series stays small even over
// five years.
func ResolveEndDate(frequency Frequency, startDate string, endDate string) string {
	if endDate != "" {
		return endDate
	}

	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return startDate
	}

	if frequency == Yearly {
		return start.AddDate(5, 0, 0).Format(DateLayout)
	}
	return start.AddDate(1, 0, 0).Format(DateLayout)
}

func sortedWeekdays(weekdays []time.Weekday) []time.Weekday {
	sorted := slices.Clone(weekdays)
	slices.Sort(sorted)
	return sorted
}
