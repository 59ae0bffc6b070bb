package country_codes_client

import (
	"context"
	"encoding/json"
	"fmt"
)

type CountryCode struct {
	Name     string `json:"name"`
	DialCode string `json:"dial_code"`
	Code     string `json:"code"`
}

// ListCountryCodes returns the codes in the order the resource lists them.
func (c *CountryCodesClient) ListCountryCodes(ctx context.Context) ([]CountryCode, error) {
	body, err := c.Get(ctx, c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to get country codes: %w", err)
	}

	var codes []CountryCode
	if err := json.Unmarshal(body, &codes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return codes, nil
}
