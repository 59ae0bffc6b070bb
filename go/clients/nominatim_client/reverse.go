package nominatim_client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

type Place struct {
	PlaceID     int64             `json:"place_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// ReverseGeocode resolves a coordinate pair. Latitude and longitude are passed
// through as typed by the user.
func (c *NominatimClient) ReverseGeocode(ctx context.Context, latitude, longitude string) (*Place, error) {
	query := url.Values{}
	query.Set("format", FormatJSON)
	query.Set("lat", latitude)
	query.Set("lon", longitude)

	endpoint := fmt.Sprintf("%s?%s", ReverseEndpoint, query.Encode())
	body, err := c.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to reverse geocode: %w", err)
	}

	var place Place
	if err := json.Unmarshal(body, &place); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	if place.Error != "" {
		return nil, fmt.Errorf("API returned error: %s", place.Error)
	}

	return &place, nil
}
