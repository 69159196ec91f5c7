// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package osrm implements routing against the public OSRM demo server. It does not
// require an API key and acts as the last resort of the routing chain.
package osrm

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wneessen/go-tripfare/internal/geo"
	"github.com/wneessen/go-tripfare/internal/http"
	"github.com/wneessen/go-tripfare/internal/routing"
)

const (
	APIEndpoint = "https://router.project-osrm.org/route/v1"
	APITimeout  = time.Second * 20
	name        = "osrm"
)

type OSRM struct {
	http *http.Client
}

type Response struct {
	Code   string  `json:"code"`
	Routes []Route `json:"routes"`
}

type Route struct {
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Geometry Geometry `json:"geometry"`
	Legs     []Leg    `json:"legs"`
}

type Geometry struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type Leg struct {
	Steps []Step `json:"steps"`
}

type Step struct {
	Distance float64  `json:"distance"`
	Duration float64  `json:"duration"`
	Name     string   `json:"name"`
	Maneuver Maneuver `json:"maneuver"`
}

type Maneuver struct {
	Type     string `json:"type"`
	Modifier string `json:"modifier"`
}

// New returns an OSRM router against the public demo server.
func New(client *http.Client) *OSRM {
	return &OSRM{
		http: client,
	}
}

func (o *OSRM) Name() string {
	return name
}

// Route requests directions with full GeoJSON geometry and steps. The travel mode
// selects the profile path segment of the request URL.
func (o *OSRM) Route(ctx context.Context, start, end geo.Coordinate, mode routing.Mode) (routing.RouteSummary, error) {
	var response Response

	profile := travelProfile(mode)
	endpoint := fmt.Sprintf("%s/%s/%f,%f;%f,%f", APIEndpoint, profile,
		start.Lon, start.Lat, end.Lon, end.Lat)
	query := url.Values{}
	query.Set("overview", "full")
	query.Set("geometries", "geojson")
	query.Set("steps", "true")
	query.Set("alternatives", "false")

	if _, err := o.http.GetWithTimeout(ctx, endpoint, &response, query, nil, APITimeout); err != nil {
		return routing.RouteSummary{}, fmt.Errorf("failed to fetch directions from OSRM API: %w", err)
	}
	if response.Code != "Ok" || len(response.Routes) < 1 {
		return routing.RouteSummary{}, fmt.Errorf("no routes found between the provided locations")
	}

	route := response.Routes[0]
	summary := routing.RouteSummary{
		Provider:        name,
		Profile:         profile,
		DistanceMeters:  route.Distance,
		DurationSeconds: route.Duration,
	}
	for _, pair := range route.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		summary.Geometry = append(summary.Geometry, geo.Coordinate{Lon: pair[0], Lat: pair[1]})
	}
	for _, leg := range route.Legs {
		for _, step := range leg.Steps {
			summary.Steps = append(summary.Steps, routing.RouteStep{
				DistanceMeters:  step.Distance,
				DurationSeconds: step.Duration,
				Instruction:     instruction(step),
			})
		}
	}

	return summary, nil
}

// travelProfile maps the canonical mode onto the OSRM profile path segment.
func travelProfile(mode routing.Mode) string {
	switch mode {
	case routing.ModeBike:
		return "cycling"
	case routing.ModeFoot:
		return "walking"
	default:
		return "driving"
	}
}

// instruction builds a human-readable instruction from the OSRM maneuver fields,
// which carry no pre-rendered text.
func instruction(step Step) string {
	parts := make([]string, 0, 3)
	if step.Maneuver.Type != "" {
		parts = append(parts, step.Maneuver.Type)
	}
	if step.Maneuver.Modifier != "" {
		parts = append(parts, step.Maneuver.Modifier)
	}
	if step.Name != "" {
		parts = append(parts, "onto "+step.Name)
	}
	return strings.Join(parts, " ")
}
