package dtos

type SubscribeMessageDto struct {
	Subject string `json:"subject"`
}

// CalendarChangedDto tells subscribed clients to refetch the given dates.
type CalendarChangedDto struct {
	Dates []string `json:"dates"`
}

func (dto SubscribeMessageDto) Topic() string {
	return dto.Subject
}

func (dto SubscribeMessageDto) Validate() (bool, map[string]string) {
	return true, make(map[string]string)
}
