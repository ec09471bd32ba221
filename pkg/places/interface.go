package places

import (
	"context"
)

type Client interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// Place is a resolved location: coordinates plus display names. The name
// fields are optional; rendering falls back between them and the address.
type Place struct {
	NameEn    *string `json:"nameEn,omitempty"`
	NameKo    *string `json:"nameKo,omitempty"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
