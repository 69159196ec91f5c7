// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package nominatim implements forward geocoding against the public OpenStreetMap
// Nominatim API. It does not require an API key.
package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/go-tripfare/internal/geo"
	"github.com/wneessen/go-tripfare/internal/http"
)

const (
	APISearchEndpoint = "https://nominatim.openstreetmap.org/search"
	APITimeout        = time.Second * 15
	APIResultLimit    = 5
	name              = "osm-nominatim"
)

type Nominatim struct {
	country string
	http    *http.Client
}

type SearchResult struct {
	// Nominatim returns lat/lon as strings
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	DisplayName string  `json:"display_name"`
	Importance  float64 `json:"importance"`
}

// New returns a Nominatim geocoder biased towards the given ISO-3166-1 alpha-2
// country code.
func New(client *http.Client, country string) *Nominatim {
	return &Nominatim{
		country: country,
		http:    client,
	}
}

func (n *Nominatim) Name() string {
	return name
}

// Search resolves an address and returns the coordinate of the candidate with the
// highest self-reported importance score.
func (n *Nominatim) Search(ctx context.Context, address string) (geo.Coordinate, error) {
	var result []SearchResult
	var err error

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("q", address)
	query.Set("limit", strconv.Itoa(APIResultLimit))
	if n.country != "" {
		query.Set("countrycodes", strings.ToLower(n.country))
	}

	if _, err = n.http.GetWithTimeout(ctx, APISearchEndpoint, &result, query, nil, APITimeout); err != nil {
		return geo.Coordinate{}, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err)
	}
	if len(result) < 1 {
		return geo.Coordinate{}, fmt.Errorf("no coordinates found for address %q", address)
	}

	best := result[0]
	for _, candidate := range result[1:] {
		if candidate.Importance > best.Importance {
			best = candidate
		}
	}

	var coords geo.Coordinate
	coords.Lat, err = strconv.ParseFloat(best.APILat, 64)
	if err != nil {
		return coords, fmt.Errorf("failed to parse latitude from Nominatim API response: %w", err)
	}
	coords.Lon, err = strconv.ParseFloat(best.APILon, 64)
	if err != nil {
		return coords, fmt.Errorf("failed to parse longitude from Nominatim API response: %w", err)
	}

	return coords, nil
}
