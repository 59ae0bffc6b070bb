package country_codes_client

import (
	"github.com/mcdev12/chipstore/go/clients"
)

type CountryCodesClient struct {
	*clients.BaseClient
	endpoint string
}

func NewCountryCodesClient() *CountryCodesClient {
	return NewCountryCodesClientWithURL(BaseURL, CountryCodesEndpoint)
}

// NewCountryCodesClientWithURL points the client at a mirror of the codes list.
func NewCountryCodesClientWithURL(baseURL, endpoint string) *CountryCodesClient {
	return &CountryCodesClient{
		BaseClient: clients.NewBaseClient(baseURL),
		endpoint:   endpoint,
	}
}
