package places

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
)

type client struct {
	baseURL string
}

// New returns a Client against a Nominatim-compatible geocoding endpoint.
func New(baseURL string) Client {
	return client{
		baseURL: baseURL,
	}
}

type searchResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (client client) Search(ctx context.Context, query string) ([]Place, error) {
	u, err := url.Parse(fmt.Sprintf("%s/search", client.baseURL))
	if err != nil {
		return nil, err
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "json")
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "sayplan.app/1.0")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places provider returned %d", res.StatusCode)
	}

	var results []searchResult
	err = httptools.ReadJSON(res.Body, &results)
	if err != nil {
		return nil, err
	}

	places := []Place{}
	for _, result := range results {
		lat, err := strconv.ParseFloat(result.Lat, 64)
		if err != nil {
			continue
		}
		lon, err := strconv.ParseFloat(result.Lon, 64)
		if err != nil {
			continue
		}

		//nolint:exhaustruct //name fields are optional
		places = append(places, Place{
			Address:   result.DisplayName,
			Latitude:  lat,
			Longitude: lon,
		})
	}

	return places, nil
}
