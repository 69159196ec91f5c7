// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package google implements routing against the Google Directions API. It is the
// only traffic-aware backend: for driving routes it requests a live departure time
// and prefers the in-traffic duration over the schedule-based one.
package google

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"time"

	"github.com/wneessen/go-tripfare/internal/geo"
	"github.com/wneessen/go-tripfare/internal/http"
	"github.com/wneessen/go-tripfare/internal/routing"
	"github.com/wneessen/go-tripfare/internal/routing/polyline"
)

const (
	APIEndpoint = "https://maps.googleapis.com/maps/api/directions/json"
	APITimeout  = time.Second * 25
	name        = "google"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

type Google struct {
	apikey string
	http   *http.Client
}

type Response struct {
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
	Routes       []Route `json:"routes"`
}

type Route struct {
	Legs             []Leg    `json:"legs"`
	OverviewPolyline Polyline `json:"overview_polyline"`
}

type Leg struct {
	Distance          Value  `json:"distance"`
	Duration          Value  `json:"duration"`
	DurationInTraffic Value  `json:"duration_in_traffic"`
	Steps             []Step `json:"steps"`
}

type Step struct {
	HTMLInstructions string `json:"html_instructions"`
	Distance         Value  `json:"distance"`
	Duration         Value  `json:"duration"`
}

type Polyline struct {
	Points string `json:"points"`
}

type Value struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

// New returns a Google directions router. It fails with ErrConfigMissing when no
// API key is configured.
func New(client *http.Client, apikey string) (*Google, error) {
	if apikey == "" {
		return nil, routing.ErrConfigMissing
	}
	return &Google{
		apikey: apikey,
		http:   client,
	}, nil
}

func (g *Google) Name() string {
	return name
}

// Route requests directions between two coordinates. Driving routes are requested
// with departure_time=now so the response carries a live-traffic duration.
func (g *Google) Route(ctx context.Context, start, end geo.Coordinate, mode routing.Mode) (routing.RouteSummary, error) {
	var response Response

	profile := travelMode(mode)
	query := url.Values{}
	query.Set("origin", fmt.Sprintf("%f,%f", start.Lat, start.Lon))
	query.Set("destination", fmt.Sprintf("%f,%f", end.Lat, end.Lon))
	query.Set("mode", profile)
	query.Set("units", "metric")
	query.Set("key", g.apikey)
	if mode == routing.ModeCar {
		query.Set("departure_time", "now")
	}

	if _, err := g.http.GetWithTimeout(ctx, APIEndpoint, &response, query, nil, APITimeout); err != nil {
		return routing.RouteSummary{}, fmt.Errorf("failed to fetch directions from Google Directions API: %w", err)
	}
	if response.Status != "OK" {
		return routing.RouteSummary{}, fmt.Errorf("Google Directions API error: %s - %s",
			response.Status, response.ErrorMessage)
	}
	if len(response.Routes) < 1 {
		return routing.RouteSummary{}, fmt.Errorf("no routes found between the provided locations")
	}

	route := response.Routes[0]
	summary := routing.RouteSummary{
		Provider: name,
		Profile:  profile,
		Geometry: polyline.Decode(route.OverviewPolyline.Points),
	}

	var duration, trafficDuration float64
	for _, leg := range route.Legs {
		summary.DistanceMeters += leg.Distance.Value
		duration += leg.Duration.Value
		trafficDuration += leg.DurationInTraffic.Value
		for _, step := range leg.Steps {
			summary.Steps = append(summary.Steps, routing.RouteStep{
				DistanceMeters:  step.Distance.Value,
				DurationSeconds: step.Duration.Value,
				Instruction:     stripTags(step.HTMLInstructions),
			})
		}
	}

	// Prefer the live-traffic duration when the API provided one.
	summary.DurationSeconds = duration
	if mode == routing.ModeCar && trafficDuration > 0 {
		summary.DurationSeconds = trafficDuration
		summary.TrafficAware = true
	}

	return summary, nil
}

// travelMode maps the canonical mode onto the Google Directions vocabulary.
func travelMode(mode routing.Mode) string {
	switch mode {
	case routing.ModeBike:
		return "bicycling"
	case routing.ModeFoot:
		return "walking"
	default:
		return "driving"
	}
}

func stripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}
