// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package routing resolves a pair of coordinates plus a travel mode into a route
// using an ordered fallback chain of directions providers.
package routing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-tripfare/internal/geo"
	"github.com/wneessen/go-tripfare/internal/logger"
)

// ProviderDirect identifies the synthetic zero-distance route used when start and
// end resolve to the same point.
const ProviderDirect = "direct"

// ErrConfigMissing indicates that a provider requiring a credential was selected
// but no credential is configured.
var ErrConfigMissing = errors.New("routing provider requires an API key but none is configured")

// Mode is the canonical travel mode of a trip. Each routing backend maps it onto
// its own profile vocabulary.
type Mode string

const (
	ModeCar  Mode = "car"
	ModeBike Mode = "bike"
	ModeFoot Mode = "foot"
)

// ParseMode maps a user-supplied mode string onto a canonical Mode. Unrecognized
// values fall back to driving.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bike", "bicycle", "bicycling", "cycling":
		return ModeBike
	case "foot", "walk", "walking", "pedestrian":
		return ModeFoot
	default:
		return ModeCar
	}
}

// RouteStep is a single turn-by-turn instruction. Steps are informational only and
// play no role in the fare math.
type RouteStep struct {
	DistanceMeters  float64 `json:"distance_m"`
	DurationSeconds float64 `json:"duration_s"`
	Instruction     string  `json:"instruction"`
}

// RouteSummary is the provider-independent result of a directions request.
type RouteSummary struct {
	Provider        string           `json:"provider"`
	Profile         string           `json:"profile"`
	DistanceMeters  float64          `json:"distance_m"`
	DurationSeconds float64          `json:"duration_s"`
	Geometry        []geo.Coordinate `json:"geometry,omitempty"`
	Steps           []RouteStep      `json:"steps,omitempty"`
	TrafficAware    bool             `json:"traffic_aware"`
}

// Router defines an interface for directions service providers.
type Router interface {
	Name() string
	Route(ctx context.Context, start, end geo.Coordinate, mode Mode) (RouteSummary, error)
}

// RoutingError indicates that the selected routing backend reported an error and
// no further fallback exists.
type RoutingError struct {
	Provider string
	Err      error
}

// Error satisfies the error interface.
func (e *RoutingError) Error() string {
	return fmt.Sprintf("no route found between the provided locations (%s): %s", e.Provider, e.Err)
}

// Unwrap exposes the underlying transport error.
func (e *RoutingError) Unwrap() error {
	return e.Err
}

// Resolver routes against an ordered list of directions providers. Backend failures
// inside the chain are logged and swallowed, only failure of the final backend
// surfaces as a RoutingError.
type Resolver struct {
	routers []Router
	logger  *logger.Logger
}

// NewResolver returns a Resolver for the given provider chain.
func NewResolver(routers []Router, log *logger.Logger) *Resolver {
	return &Resolver{
		routers: routers,
		logger:  log,
	}
}

// Route tries each backend in order and returns the first successful route
// summary. The last backend fails loudly, there is no silent fallback past it.
func (r *Resolver) Route(ctx context.Context, start, end geo.Coordinate, mode Mode) (RouteSummary, error) {
	if len(r.routers) == 0 {
		return RouteSummary{}, &RoutingError{Provider: "none", Err: ErrConfigMissing}
	}

	var lastErr error
	var lastName string
	for _, router := range r.routers {
		summary, err := router.Route(ctx, start, end, mode)
		if err == nil {
			return summary, nil
		}
		lastErr = err
		lastName = router.Name()
		r.logger.Debug("routing provider failed, trying next",
			slog.String("provider", lastName), logger.Err(err))
	}

	return RouteSummary{}, &RoutingError{Provider: lastName, Err: lastErr}
}
