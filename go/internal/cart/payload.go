package cart

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mcdev12/chipstore/go/internal/models"
)

// QueryKey is the query parameter that carries the cart between screens.
const QueryKey = "cart"

// Encode serializes lines as a query-escaped JSON array. An empty cart encodes
// as "[]".
func Encode(lines []models.CartLine) string {
	if lines == nil {
		lines = []models.CartLine{}
	}
	// Marshalling plain structs of strings and numbers cannot fail.
	raw, _ := json.Marshal(lines)
	return url.QueryEscape(string(raw))
}

// Decode reverses Encode. It also accepts payloads produced by a browser's
// encodeURIComponent.
func Decode(escaped string) ([]models.CartLine, error) {
	raw, err := url.QueryUnescape(escaped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return decodeJSON(raw)
}

// FromQuery extracts the cart from already-unescaped query values. A missing
// parameter is an empty cart.
func FromQuery(values url.Values) ([]models.CartLine, error) {
	raw := values.Get(QueryKey)
	if raw == "" {
		return nil, nil
	}
	return decodeJSON(raw)
}

// Location builds path?cart=<payload>.
func Location(path, payload string) string {
	return path + "?" + QueryKey + "=" + payload
}

func decodeJSON(raw string) ([]models.CartLine, error) {
	var lines []models.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	seen := make(map[int]bool, len(lines))
	kept := lines[:0]
	for _, line := range lines {
		if line.Quantity < 0 {
			return nil, fmt.Errorf("%w: negative quantity for item %d", ErrMalformedPayload, line.ID)
		}
		if seen[line.ID] {
			return nil, fmt.Errorf("%w: duplicate line for item %d", ErrMalformedPayload, line.ID)
		}
		seen[line.ID] = true
		if line.Quantity > 0 {
			kept = append(kept, line)
		}
	}
	return kept, nil
}
