package nominatim_client

import (
	"github.com/mcdev12/chipstore/go/clients"
)

type NominatimClient struct {
	*clients.BaseClient
}

func NewNominatimClient(userAgent string) *NominatimClient {
	return NewNominatimClientWithURL(BaseURL, userAgent)
}

func NewNominatimClientWithURL(baseURL, userAgent string) *NominatimClient {
	client := &NominatimClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	// Nominatim's usage policy rejects requests without an identifying agent.
	client.SetHeader(UserAgentHeader, userAgent)

	return client
}
