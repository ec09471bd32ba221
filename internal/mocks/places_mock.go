package mocks

import (
	"context"

	"sayplan.app/pkg/places"
)

type MockPlacesClient struct {
}

func NewMockPlacesClient() places.Client {
	return MockPlacesClient{}
}

func (m MockPlacesClient) Search(
	_ context.Context,
	_ string,
) ([]places.Place, error) {
	nameEn := "Seoul City Hall"
	nameKo := "서울시청"

	return []places.Place{
		{
			NameEn:    &nameEn,
			NameKo:    &nameKo,
			Address:   "110 Sejong-daero, Jung-gu, Seoul",
			Latitude:  37.5663,
			Longitude: 126.9779,
		},
		{
			NameEn:    nil,
			NameKo:    nil,
			Address:   "Busan Station, Busan",
			Latitude:  35.1151,
			Longitude: 129.0403,
		},
	}, nil
}
