package checkout

import (
	"context"

	"github.com/mcdev12/chipstore/go/clients/country_codes_client"
	"github.com/rs/zerolog/log"
)

// fetchCountryCodes loads the dial codes in the background. A failed fetch
// leaves the selector empty.
func (s *Screen) fetchCountryCodes() {
	if s.deps.Countries == nil {
		s.loop.Inspect(func() { s.countriesReady = true })
		return
	}

	s.loop.Go(func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, s.deps.FetchTimeout)
		defer cancel()

		codes, err := s.deps.Countries.ListCountryCodes(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to fetch country codes")
			codes = nil
		}

		s.loop.Dispatch(func() {
			s.countries = codes
			s.countriesReady = true
		})
	})
}

// lookupAddress reverse geocodes the typed coordinates. Whatever the lookup
// returns, the address settles on PlaceholderAddress. Presses while a lookup
// is running are ignored.
func (s *Screen) lookupAddress() {
	if s.loading {
		return
	}
	s.loading = true

	lat, lon := s.latitude, s.longitude
	started := s.loop.Go(func(ctx context.Context) {
		if s.deps.Geocoder != nil {
			ctx, cancel := context.WithTimeout(ctx, s.deps.FetchTimeout)
			place, err := s.deps.Geocoder.ReverseGeocode(ctx, lat, lon)
			cancel()
			if err != nil {
				log.Warn().Err(err).Str("lat", lat).Str("lon", lon).Msg("failed to fetch address")
			} else {
				log.Debug().Str("display_name", place.DisplayName).Msg("address resolved")
			}
		}

		s.loop.Dispatch(func() {
			s.address = PlaceholderAddress
			s.loading = false
		})
	})
	if !started {
		s.loading = false
	}
}

// DialCodes returns the dial codes offered by the selector.
func (s *Screen) DialCodes() []string {
	var codes []string
	s.loop.Inspect(func() { codes = dialCodes(s.countries) })
	return codes
}

func dialCodes(countries []country_codes_client.CountryCode) []string {
	codes := make([]string, 0, len(countries))
	for _, c := range countries {
		codes = append(codes, c.DialCode)
	}
	return codes
}
