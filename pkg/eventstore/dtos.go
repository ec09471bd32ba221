package eventstore

import (
	"github.com/xdoubleu/essentia/v2/pkg/validate"
)

// RecurringRuleDto is the recurrence part of an event payload. EndDate may
// be omitted; the store resolves it to a default horizon before persisting.
type RecurringRuleDto struct {
	Rule      string `json:"rule"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate,omitempty"`
}

type CreateEventDto struct {
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	StartTime   string            `json:"startTime"`
	EndTime     string            `json:"endTime"`
	IsAllDay    bool              `json:"isAllDay"`
	ColorCode   string            `json:"colorCode"`
	Location    *Location         `json:"location,omitempty"`
	Recurring   *RecurringRuleDto `json:"recurring,omitempty"`
}

// UpdateEventDto carries the same payload shape as CreateEventDto.
type UpdateEventDto = CreateEventDto

// HasRecurrence reports whether the payload describes a recurring series,
// i.e. a rule and a start date are both present.
func (dto CreateEventDto) HasRecurrence() bool {
	return dto.Recurring != nil &&
		dto.Recurring.Rule != "" &&
		dto.Recurring.StartDate != ""
}

func (dto *CreateEventDto) Validate() (bool, map[string]string) {
	v := validate.New()

	validate.Check(v, "title", dto.Title, validate.IsNotEmpty)
	validate.Check(v, "startTime", dto.StartTime, validate.IsNotEmpty)
	validate.Check(v, "endTime", dto.EndTime, validate.IsNotEmpty)

	if dto.Location != nil {
		validate.Check(v, "location.address", dto.Location.Address, validate.IsNotEmpty)
	}

	if dto.Recurring != nil {
		validate.Check(v, "recurring.rule", dto.Recurring.Rule, validate.IsNotEmpty)
		validate.Check(
			v,
			"recurring.startDate",
			dto.Recurring.StartDate,
			validate.IsNotEmpty,
		)
	}

	ok, errs := v.Valid(), v.Errors()

	if !IsPaletteColor(dto.ColorCode) {
		errs["colorCode"] = "must be one of the palette colors"
		ok = false
	}

	return ok, errs
}
