// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package ors implements forward geocoding against the openrouteservice Pelias
// search API. It requires an API key.
package ors

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/wneessen/go-tripfare/internal/geo"
	"github.com/wneessen/go-tripfare/internal/http"
)

const (
	APIEndpoint = "https://api.openrouteservice.org/geocode/search"
	APITimeout  = time.Second * 15
	name        = "ors"
)

type ORS struct {
	apikey  string
	country string
	http    *http.Client
}

type Response struct {
	Features []Feature `json:"features"`
}

type Feature struct {
	Geometry Geometry `json:"geometry"`
}

type Geometry struct {
	// Coordinates come in [lon, lat] order.
	Coordinates []float64 `json:"coordinates"`
}

// New returns an ORS geocoder biased towards the given ISO-3166-1 alpha-2
// country code.
func New(client *http.Client, apikey, country string) *ORS {
	return &ORS{
		apikey:  apikey,
		country: country,
		http:    client,
	}
}

func (o *ORS) Name() string {
	return name
}

// Search resolves an address via the Pelias search endpoint and returns the
// coordinate of the highest-ranked feature.
func (o *ORS) Search(ctx context.Context, address string) (geo.Coordinate, error) {
	var response Response

	query := url.Values{}
	query.Set("api_key", o.apikey)
	query.Set("text", address)
	if o.country != "" {
		query.Set("boundary.country", strings.ToUpper(o.country))
	}

	code, err := o.http.GetWithTimeout(ctx, APIEndpoint, &response, query, nil, APITimeout)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to fetch address details from ORS geocoding API: %w", err)
	}
	if code != 200 {
		return geo.Coordinate{}, fmt.Errorf("received non-positive response code from ORS geocoding API: %d", code)
	}
	if len(response.Features) < 1 {
		return geo.Coordinate{}, fmt.Errorf("no coordinates found for address %q", address)
	}
	coords := response.Features[0].Geometry.Coordinates
	if len(coords) < 2 {
		return geo.Coordinate{}, fmt.Errorf("malformed geometry in ORS geocoding API response")
	}

	return geo.Coordinate{Lon: coords[0], Lat: coords[1]}, nil
}
