// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package trip orchestrates the trip estimation pipeline: address resolution,
// routing and fare calculation.
package trip

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-tripfare/internal/fare"
	"github.com/wneessen/go-tripfare/internal/geo"
	"github.com/wneessen/go-tripfare/internal/geocode"
	"github.com/wneessen/go-tripfare/internal/logger"
	"github.com/wneessen/go-tripfare/internal/routing"
)

// Result is the priced trip estimate returned to the caller.
type Result struct {
	DistanceKm   float64             `json:"distance_km"`
	DurationMin  float64             `json:"duration_min"`
	Fare         float64             `json:"fare"`
	Start        geo.Coordinate      `json:"start"`
	End          geo.Coordinate      `json:"end"`
	Mode         routing.Mode        `json:"mode"`
	Provider     string              `json:"provider"`
	Profile      string              `json:"profile"`
	Geometry     []geo.Coordinate    `json:"geometry,omitempty"`
	Steps        []routing.RouteStep `json:"steps,omitempty"`
	TrafficAware bool                `json:"traffic_aware"`
}

// Planner composes the geocoding resolver, the routing resolver and the fare
// calculator into the trip pipeline. Planners are stateless per request and safe
// for concurrent use.
type Planner struct {
	geocoder *geocode.Resolver
	router   *routing.Resolver
	fares    fare.Calculator
	logger   *logger.Logger
}

// New returns a Planner composed of the given resolvers and fare calculator.
func New(geocoder *geocode.Resolver, router *routing.Resolver, fares fare.Calculator,
	log *logger.Logger,
) *Planner {
	return &Planner{
		geocoder: geocoder,
		router:   router,
		fares:    fares,
		logger:   log,
	}
}

// ComputeTrip resolves two raw address strings and a travel mode into a priced
// trip estimate. Geocoding and routing failures propagate to the caller as their
// typed errors for user-facing reporting.
func (p *Planner) ComputeTrip(ctx context.Context, startRaw, endRaw, mode string) (Result, error) {
	travelMode := routing.ParseMode(mode)

	start, err := p.geocoder.Resolve(ctx, startRaw)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve start address: %w", err)
	}
	end, err := p.geocoder.Resolve(ctx, endRaw)
	if err != nil {
		return Result{}, fmt.Errorf("failed to resolve dropoff address: %w", err)
	}

	var summary routing.RouteSummary
	if geo.SamePoint(start, end) {
		// Degenerate inputs break some routing backends, skip network routing
		// entirely and price the trip at the base fare.
		summary = directSummary(start, end, travelMode)
		p.logger.Debug("start and dropoff resolve to the same point, skipping routing",
			slog.Float64("lat", start.Lat), slog.Float64("lon", start.Lon))
	} else {
		summary, err = p.router.Route(ctx, start, end, travelMode)
		if err != nil {
			return Result{}, err
		}
	}

	return Result{
		DistanceKm:   summary.DistanceMeters / 1000,
		DurationMin:  summary.DurationSeconds / 60,
		Fare:         p.fares.Estimate(summary.DistanceMeters, summary.DurationSeconds),
		Start:        start,
		End:          end,
		Mode:         travelMode,
		Provider:     summary.Provider,
		Profile:      summary.Profile,
		Geometry:     summary.Geometry,
		Steps:        summary.Steps,
		TrafficAware: summary.TrafficAware,
	}, nil
}

// directSummary is the zero-distance route used when both endpoints are within
// the same-point threshold.
func directSummary(start, end geo.Coordinate, mode routing.Mode) routing.RouteSummary {
	return routing.RouteSummary{
		Provider: routing.ProviderDirect,
		Profile:  string(mode),
		Geometry: []geo.Coordinate{start, end},
	}
}
