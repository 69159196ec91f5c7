// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package ors implements routing against the openrouteservice directions API v2.
// It requires an API key and is never traffic-aware.
package ors

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wneessen/go-tripfare/internal/geo"
	"github.com/wneessen/go-tripfare/internal/http"
	"github.com/wneessen/go-tripfare/internal/routing"
)

const (
	APIEndpoint = "https://api.openrouteservice.org/v2/directions"
	APITimeout  = time.Second * 20
	name        = "ors"
)

type ORS struct {
	apikey string
	http   *http.Client
}

type Request struct {
	// Coordinates come in [lon, lat] order.
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
}

type Response struct {
	Features []Feature `json:"features"`
}

type Feature struct {
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

type Properties struct {
	Summary  Summary   `json:"summary"`
	Segments []Segment `json:"segments"`
}

type Summary struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
}

type Segment struct {
	Steps []Step `json:"steps"`
}

type Step struct {
	Distance    float64 `json:"distance"`
	Duration    float64 `json:"duration"`
	Instruction string  `json:"instruction"`
}

type Geometry struct {
	Coordinates [][]float64 `json:"coordinates"`
}

// New returns an ORS directions router. It fails with ErrConfigMissing when no
// API key is configured.
func New(client *http.Client, apikey string) (*ORS, error) {
	if apikey == "" {
		return nil, routing.ErrConfigMissing
	}
	return &ORS{
		apikey: apikey,
		http:   client,
	}, nil
}

func (o *ORS) Name() string {
	return name
}

// Route requests directions with full GeoJSON geometry and turn instructions.
func (o *ORS) Route(ctx context.Context, start, end geo.Coordinate, mode routing.Mode) (routing.RouteSummary, error) {
	var response Response

	profile := travelProfile(mode)
	body, err := json.Marshal(Request{
		Coordinates:  [][]float64{{start.Lon, start.Lat}, {end.Lon, end.Lat}},
		Instructions: true,
	})
	if err != nil {
		return routing.RouteSummary{}, fmt.Errorf("failed to marshal ORS directions request: %w", err)
	}

	headers := map[string]string{
		"Authorization": o.apikey,
		"Content-Type":  "application/json",
	}
	endpoint := fmt.Sprintf("%s/%s/geojson", APIEndpoint, profile)
	code, err := o.http.PostWithTimeout(ctx, endpoint, &response, bytes.NewReader(body), headers, APITimeout)
	if err != nil {
		return routing.RouteSummary{}, fmt.Errorf("failed to fetch directions from ORS directions API: %w", err)
	}
	if code != 200 {
		return routing.RouteSummary{}, fmt.Errorf("received non-positive response code from ORS directions API: %d", code)
	}
	if len(response.Features) < 1 {
		return routing.RouteSummary{}, fmt.Errorf("no routes found between the provided locations")
	}

	feature := response.Features[0]
	summary := routing.RouteSummary{
		Provider:        name,
		Profile:         profile,
		DistanceMeters:  feature.Properties.Summary.Distance,
		DurationSeconds: feature.Properties.Summary.Duration,
	}
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		summary.Geometry = append(summary.Geometry, geo.Coordinate{Lon: pair[0], Lat: pair[1]})
	}
	for _, segment := range feature.Properties.Segments {
		for _, step := range segment.Steps {
			summary.Steps = append(summary.Steps, routing.RouteStep{
				DistanceMeters:  step.Distance,
				DurationSeconds: step.Duration,
				Instruction:     step.Instruction,
			})
		}
	}

	return summary, nil
}

// travelProfile maps the canonical mode onto the ORS profile vocabulary.
func travelProfile(mode routing.Mode) string {
	switch mode {
	case routing.ModeBike:
		return "cycling-regular"
	case routing.ModeFoot:
		return "foot-walking"
	default:
		return "driving-car"
	}
}
