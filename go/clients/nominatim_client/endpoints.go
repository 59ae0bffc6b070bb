package nominatim_client

const (
	// Base URL
	BaseURL = "https://nominatim.openstreetmap.org"

	// API Endpoints
	ReverseEndpoint = "/reverse"

	// Response format
	FormatJSON = "json"

	// Headers
	UserAgentHeader  = "User-Agent"
	DefaultUserAgent = "chipstore/1.0"
)
