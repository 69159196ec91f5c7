// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package geocode resolves free-form address strings to geographic coordinates
// using an ordered fallback chain of providers.
package geocode

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-tripfare/internal/address"
	"github.com/wneessen/go-tripfare/internal/geo"
	"github.com/wneessen/go-tripfare/internal/logger"
)

// Geocoder defines an interface for forward geocoding service providers.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, address string) (geo.Coordinate, error)
}

// GeocodeError indicates that every geocoding strategy was exhausted for an
// address. It carries the original, non-simplified input for diagnostics.
type GeocodeError struct {
	Address string
}

// Error satisfies the error interface.
func (e *GeocodeError) Error() string {
	return fmt.Sprintf("no results found for address: %s", e.Address)
}

// Resolver resolves raw address strings against an ordered list of geocoding
// providers. Provider failures inside the chain are logged and swallowed, only
// exhaustion of the whole chain surfaces as a GeocodeError.
type Resolver struct {
	normalizer *address.Normalizer
	providers  []Geocoder
	logger     *logger.Logger
}

// NewResolver returns a Resolver for the given normalizer and provider chain.
func NewResolver(normalizer *address.Normalizer, providers []Geocoder, log *logger.Logger) *Resolver {
	return &Resolver{
		normalizer: normalizer,
		providers:  providers,
		logger:     log,
	}
}

// Resolve turns a raw address string into a coordinate. Raw coordinate literals
// bypass normalization and all providers. Otherwise the normalized address is
// tried against each provider in order, then once more against a simplified
// form of the address when the first pass came up empty.
func (r *Resolver) Resolve(ctx context.Context, raw string) (geo.Coordinate, error) {
	if coord, ok := geo.ParseLiteral(raw); ok {
		return coord, nil
	}

	normalized := r.normalizer.Normalize(raw)
	if coord, ok := r.search(ctx, normalized); ok {
		return coord, nil
	}

	if simplified := address.Simplify(normalized); simplified != normalized {
		if coord, ok := r.search(ctx, simplified); ok {
			return coord, nil
		}
	}

	return geo.Coordinate{}, &GeocodeError{Address: raw}
}

// search runs a single pass over the provider chain.
func (r *Resolver) search(ctx context.Context, query string) (geo.Coordinate, bool) {
	if query == "" {
		return geo.Coordinate{}, false
	}
	for _, provider := range r.providers {
		coord, err := provider.Search(ctx, query)
		if err != nil {
			r.logger.Debug("geocoding provider failed, trying next",
				slog.String("provider", provider.Name()), slog.String("address", query), logger.Err(err))
			continue
		}
		if !coord.Valid() {
			r.logger.Debug("geocoding provider returned invalid coordinate",
				slog.String("provider", provider.Name()), slog.String("address", query))
			continue
		}
		return coord, true
	}
	return geo.Coordinate{}, false
}
