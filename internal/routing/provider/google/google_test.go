// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package google

import (
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"strings"
	"testing"

	"github.com/wneessen/go-tripfare/internal/geo"
	"github.com/wneessen/go-tripfare/internal/http"
	"github.com/wneessen/go-tripfare/internal/logger"
	"github.com/wneessen/go-tripfare/internal/routing"
	"github.com/wneessen/go-tripfare/internal/testhelper"
)

const (
	directionsFile = "../../../../testdata/google_directions.json"
	zeroFile       = "../../../../testdata/google_zero_results.json"

	testAPIKey = "test-api-key"
)

var (
	testStart = geo.Coordinate{Lon: 101.6869, Lat: 3.1390}
	testEnd   = geo.Coordinate{Lon: 101.6765, Lat: 2.9264}
)

func TestNew(t *testing.T) {
	t.Run("creating a new provider succeeds", func(t *testing.T) {
		router := testRouter(t)
		if router == nil {
			t.Fatal("expected a non-nil router")
		}
	})
	t.Run("provider name is correct", func(t *testing.T) {
		router := testRouter(t)
		if router.Name() != name {
			t.Errorf("expected provider name to be %q, got %q", name, router.Name())
		}
	})
	t.Run("creating a provider without API key fails", func(t *testing.T) {
		testHttpClient := http.New(logger.New(slog.LevelDebug))
		_, err := New(testHttpClient, "")
		if err == nil {
			t.Fatal("expected provider creation to fail")
		}
		if !errors.Is(err, routing.ErrConfigMissing) {
			t.Errorf("expected ErrConfigMissing, got: %s", err)
		}
	})
}

func TestGoogle_Route(t *testing.T) {
	t.Run("driving route prefers the live-traffic duration", func(t *testing.T) {
		router := testRouterWithRoundtripFunc(t, fixtureRoundtrip(t, directionsFile))
		summary, err := router.Route(t.Context(), testStart, testEnd, routing.ModeCar)
		if err != nil {
			t.Fatal(err)
		}
		if summary.Provider != name {
			t.Errorf("expected provider to be %q, got %q", name, summary.Provider)
		}
		if summary.Profile != "driving" {
			t.Errorf("expected profile to be driving, got %q", summary.Profile)
		}
		if summary.DistanceMeters != 36800 {
			t.Errorf("expected distance of 36800m, got %f", summary.DistanceMeters)
		}
		if summary.DurationSeconds != 2940 {
			t.Errorf("expected live-traffic duration of 2940s, got %f", summary.DurationSeconds)
		}
		if !summary.TrafficAware {
			t.Error("expected summary to be traffic-aware")
		}
		if len(summary.Geometry) != 3 {
			t.Errorf("expected 3 geometry points, got %d", len(summary.Geometry))
		}
	})
	t.Run("cycling route keeps the schedule-based duration", func(t *testing.T) {
		router := testRouterWithRoundtripFunc(t, fixtureRoundtrip(t, directionsFile))
		summary, err := router.Route(t.Context(), testStart, testEnd, routing.ModeBike)
		if err != nil {
			t.Fatal(err)
		}
		if summary.Profile != "bicycling" {
			t.Errorf("expected profile to be bicycling, got %q", summary.Profile)
		}
		if summary.DurationSeconds != 2520 {
			t.Errorf("expected schedule-based duration of 2520s, got %f", summary.DurationSeconds)
		}
		if summary.TrafficAware {
			t.Error("expected summary not to be traffic-aware")
		}
	})
	t.Run("HTML tags are stripped from instructions", func(t *testing.T) {
		router := testRouterWithRoundtripFunc(t, fixtureRoundtrip(t, directionsFile))
		summary, err := router.Route(t.Context(), testStart, testEnd, routing.ModeCar)
		if err != nil {
			t.Fatal(err)
		}
		if len(summary.Steps) != 2 {
			t.Fatalf("expected 2 steps, got %d", len(summary.Steps))
		}
		want := "Head south on Jalan Ampang"
		if summary.Steps[0].Instruction != want {
			t.Errorf("expected instruction %q, got %q", want, summary.Steps[0].Instruction)
		}
	})
	t.Run("driving route requests a live departure time", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			query := req.URL.Query()
			if got := query.Get("key"); got != testAPIKey {
				t.Errorf("expected key to be %q, got %q", testAPIKey, got)
			}
			if got := query.Get("departure_time"); got != "now" {
				t.Errorf("expected departure_time to be now, got %q", got)
			}
			return fixtureRoundtrip(t, directionsFile)(req)
		}

		router := testRouterWithRoundtripFunc(t, rtFn)
		if _, err := router.Route(t.Context(), testStart, testEnd, routing.ModeCar); err != nil {
			t.Fatal(err)
		}
	})
	t.Run("walking route omits the departure time", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if req.URL.Query().Has("departure_time") {
				t.Error("expected no departure_time for walking routes")
			}
			return fixtureRoundtrip(t, directionsFile)(req)
		}

		router := testRouterWithRoundtripFunc(t, rtFn)
		if _, err := router.Route(t.Context(), testStart, testEnd, routing.ModeFoot); err != nil {
			t.Fatal(err)
		}
	})
	t.Run("routing fails on zero results", func(t *testing.T) {
		router := testRouterWithRoundtripFunc(t, fixtureRoundtrip(t, zeroFile))
		_, err := router.Route(t.Context(), testStart, testEnd, routing.ModeCar)
		if err == nil {
			t.Fatal("expected API request to fail")
		}
		if !strings.Contains(err.Error(), "ZERO_RESULTS") {
			t.Errorf("expected error to contain the API status, got %s", err)
		}
	})
	t.Run("routing fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}

		router := testRouterWithRoundtripFunc(t, rtFn)
		_, err := router.Route(t.Context(), testStart, testEnd, routing.ModeCar)
		if err == nil {
			t.Fatal("expected API request to fail")
		}
	})
}

func fixtureRoundtrip(t *testing.T, file string) func(req *stdhttp.Request) (*stdhttp.Response, error) {
	return func(req *stdhttp.Request) (*stdhttp.Response, error) {
		data, err := os.Open(file)
		if err != nil {
			t.Fatalf("failed to open JSON response file: %s", err)
		}

		return &stdhttp.Response{
			StatusCode: 200,
			Body:       data,
			Header:     make(stdhttp.Header),
		}, nil
	}
}

func testRouter(t *testing.T) routing.Router {
	testHttpClient := http.New(logger.New(slog.LevelDebug))
	router, err := New(testHttpClient, testAPIKey)
	if err != nil {
		t.Fatalf("failed to create router: %s", err)
	}
	return router
}

func testRouterWithRoundtripFunc(t *testing.T, fn func(req *stdhttp.Request) (*stdhttp.Response, error)) routing.Router {
	testHttpClient := http.New(logger.New(slog.LevelDebug))
	testHttpClient.Transport = testhelper.MockRoundTripper{Fn: fn}
	router, err := New(testHttpClient, testAPIKey)
	if err != nil {
		t.Fatalf("failed to create router: %s", err)
	}
	return router
}
