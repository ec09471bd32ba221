package services

import (
	"context"
	"slices"

	"sayplan.app/pkg/places"
)

type PlaceService struct {
	client places.Client
}

// Search looks up places matching the query. When a reference coordinate
// is given the results are sorted by distance to it.
func (service *PlaceService) Search(
	ctx context.Context,
	query string,
	near *places.Place,
) ([]places.Place, error) {
	results, err := service.client.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if near != nil {
		slices.SortStableFunc(results, func(a, b places.Place) int {
			distA := places.Distance(
				near.Latitude, near.Longitude, a.Latitude, a.Longitude,
			)
			distB := places.Distance(
				near.Latitude, near.Longitude, b.Latitude, b.Longitude,
			)

			switch {
			case distA < distB:
				return -1
			case distA > distB:
				return 1
			default:
				return 0
			}
		})
	}

	return results, nil
}
