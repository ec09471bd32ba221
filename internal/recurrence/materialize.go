package recurrence

import (
	"time"

	"github.com/teambition/rrule-go"
)

// DefaultOccurrenceCap bounds how many occurrences a single series may
// materialize in one pass. Capped series are topped up later by the
// maintenance job.
const DefaultOccurrenceCap = 1000

// Materialize returns the occurrence dates of a series between startDate
// and endDate inclusive, at most cap entries. The start date itself is the
// rule's anchor; for weekly rules with a weekday set, only the listed
// weekdays produce occurrences.
func Materialize(settings Settings, startDate, endDate string, cap int) ([]string, error) {
	start, err := time.Parse(DateLayout, startDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(DateLayout, endDate)
	if err != nil {
		return nil, err
	}

	if cap <= 0 {
		cap = DefaultOccurrenceCap
	}

	interval := settings.Interval
	if interval < 1 {
		// rule generation needs a positive step; the codec itself leaves
		// non-positive intervals untouched
		interval = 1
	}

	//nolint:exhaustruct //other fields are optional
	option := rrule.ROption{
		Freq:     frequencyToRRule(settings.Frequency),
		Interval: interval,
		Dtstart:  start,
		Until:    end,
	}

	if settings.Frequency == Weekly && len(settings.Weekdays) > 0 {
		for _, day := range settings.Weekdays {
			option.Byweekday = append(option.Byweekday, weekdayToRRule(day))
		}
	}

	rule, err := rrule.NewRRule(option)
	if err != nil {
		return nil, err
	}

	times := rule.Between(start, end, true)
	if len(times) > cap {
		times = times[:cap]
	}

	dates := make([]string, 0, len(times))
	for _, t := range times {
		dates = append(dates, t.Format(DateLayout))
	}

	return dates, nil
}

func frequencyToRRule(frequency Frequency) rrule.Frequency {
	switch frequency {
	case Daily:
		return rrule.DAILY
	case Monthly:
		return rrule.MONTHLY
	case Yearly:
		return rrule.YEARLY
	case Weekly:
		return rrule.WEEKLY
	default:
		return rrule.WEEKLY
	}
}

func weekdayToRRule(day time.Weekday) rrule.Weekday {
	switch day {
	case time.Monday:
		return rrule.MO
	case time.Tuesday:
		return rrule.TU
	case time.Wednesday:
		return rrule.WE
	case time.Thursday:
		return rrule.TH
	case time.Friday:
		return rrule.FR
	case time.Saturday:
		return rrule.SA
	case time.Sunday:
		return rrule.SU
	default:
		return rrule.SU
	}
}
