package main

import (
	"fmt"

	"github.com/mcdev12/chipstore/go/clients/country_codes_client"
	"github.com/mcdev12/chipstore/go/clients/nominatim_client"
	"github.com/mcdev12/chipstore/go/internal/config"
	"github.com/mcdev12/chipstore/go/internal/gateway"
	"github.com/mcdev12/chipstore/go/internal/publisher"
	"github.com/mcdev12/chipstore/go/internal/screens/checkout"
	"github.com/mcdev12/chipstore/go/internal/screens/router"
	"github.com/rs/zerolog/log"
)

type Services struct {
	Gateway   *gateway.Service
	Publisher publisher.Publisher
}

func setupServices(cfg *config.Config) (*Services, error) {
	// Wire up dependency injection chain
	// HTTP clients → checkout deps → router → gateway

	countries := country_codes_client.NewCountryCodesClientWithURL(cfg.Clients.CountryCodesURL, cfg.Clients.CountryCodesEndpoint)
	countries.SetTimeout(cfg.Clients.Timeout)

	geocoder := nominatim_client.NewNominatimClientWithURL(cfg.Clients.NominatimURL, cfg.Clients.UserAgent)
	geocoder.SetTimeout(cfg.Clients.Timeout)

	screenRouter := router.New(checkout.Deps{
		Countries:    countries,
		Geocoder:     geocoder,
		FetchTimeout: cfg.Clients.Timeout,
	})

	pub, err := publisher.Open(cfg.Publisher.PublisherConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open event publisher: %w", err)
	}
	dispatcher := publisher.NewDispatcher(pub, cfg.Publisher.BufferSize, cfg.Publisher.PublishTimeout)

	gatewayConfig := gateway.Config{
		ConnectionConfig: connectionConfig(cfg.WebSocket),
	}

	return &Services{
		Gateway:   gateway.NewService(gatewayConfig, screenRouter, dispatcher),
		Publisher: pub,
	}, nil
}

func connectionConfig(cfg config.WebSocketConfig) gateway.ConnectionConfig {
	cc := gateway.DefaultConnectionConfig()
	cc.WriteTimeout = cfg.WriteTimeout
	cc.ReadTimeout = cfg.ReadTimeout
	cc.PingInterval = cfg.PingInterval
	cc.MaxMessageSize = cfg.MaxMessageSize
	cc.ReadBufferSize = cfg.ReadBufferSize
	cc.WriteBufferSize = cfg.WriteBufferSize
	cc.SendBufferSize = cfg.SendBufferSize
	return cc
}

func (s *Services) Close() {
	if err := s.Publisher.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close event publisher")
	}
}
