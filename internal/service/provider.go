// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"fmt"

	"github.com/wneessen/go-tripfare/internal/address"
	"github.com/wneessen/go-tripfare/internal/geocode"
	geocodeors "github.com/wneessen/go-tripfare/internal/geocode/provider/ors"
	nominatim "github.com/wneessen/go-tripfare/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/go-tripfare/internal/http"
	"github.com/wneessen/go-tripfare/internal/logger"
	"github.com/wneessen/go-tripfare/internal/routing"
	"github.com/wneessen/go-tripfare/internal/routing/provider/google"
	routingors "github.com/wneessen/go-tripfare/internal/routing/provider/ors"
	"github.com/wneessen/go-tripfare/internal/routing/provider/osrm"
)

// selectGeocodeProviders builds the ordered geocoding chain: ORS Pelias when an
// API key is configured, then the keyless Nominatim fallback.
func (s *Service) selectGeocodeProviders(normalizer *address.Normalizer) *geocode.Resolver {
	httpClient := http.New(s.logger)
	var providers []geocode.Geocoder

	if key := s.config.Geocoding.ORSAPIKey; key != "" {
		providers = append(providers, geocodeors.New(httpClient, key, s.config.Geocoding.CountryBias))
	}
	providers = append(providers, nominatim.New(httpClient, s.config.Geocoding.CountryBias))

	return geocode.NewResolver(normalizer, providers, s.logger)
}

// selectRouters builds the ordered routing chain: Google when credentialed, then
// ORS when credentialed, then the keyless OSRM last resort. An explicit provider
// override in the configuration narrows the chain to that single backend, which
// fails with ErrConfigMissing when its credential is absent.
func (s *Service) selectRouters() (*routing.Resolver, error) {
	httpClient := http.New(s.logger)
	var routers []routing.Router

	wantGoogle := s.config.Routing.Provider == "auto" || s.config.Routing.Provider == "google"
	wantORS := s.config.Routing.Provider == "auto" || s.config.Routing.Provider == "ors"
	wantOSRM := s.config.Routing.Provider == "auto" || s.config.Routing.Provider == "osrm"

	if wantGoogle {
		router, err := google.New(httpClient, s.config.Routing.GoogleAPIKey)
		switch {
		case err == nil:
			routers = append(routers, router)
		case s.config.Routing.Provider == "google":
			return nil, fmt.Errorf("google routing provider: %w", err)
		default:
			s.logger.Debug("skipping google routing provider", logger.Err(err))
		}
	}

	if wantORS {
		router, err := routingors.New(httpClient, s.config.Routing.ORSAPIKey)
		switch {
		case err == nil:
			routers = append(routers, router)
		case s.config.Routing.Provider == "ors":
			return nil, fmt.Errorf("ors routing provider: %w", err)
		default:
			s.logger.Debug("skipping ors routing provider", logger.Err(err))
		}
	}

	if wantOSRM {
		routers = append(routers, osrm.New(httpClient))
	}

	return routing.NewResolver(routers, s.logger), nil
}
