package cart

import "errors"

// ErrMalformedPayload is returned when a navigation payload cannot be turned
// back into cart lines.
var ErrMalformedPayload = errors.New("malformed cart payload")
