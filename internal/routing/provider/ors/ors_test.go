// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package ors

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
	directionsFile = "../../../../testdata/ors_directions.json"

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

func TestORS_Route(t *testing.T) {
	t.Run("routing succeeds", func(t *testing.T) {
		router := testRouterWithRoundtripFunc(t, fixtureRoundtrip(t, directionsFile))
		summary, err := router.Route(t.Context(), testStart, testEnd, routing.ModeCar)
		if err != nil {
			t.Fatal(err)
		}
		if summary.Provider != name {
			t.Errorf("expected provider to be %q, got %q", name, summary.Provider)
		}
		if summary.Profile != "driving-car" {
			t.Errorf("expected profile to be driving-car, got %q", summary.Profile)
		}
		if summary.DistanceMeters != 12345.6 {
			t.Errorf("expected distance of 12345.6m, got %f", summary.DistanceMeters)
		}
		if summary.DurationSeconds != 1800.5 {
			t.Errorf("expected duration of 1800.5s, got %f", summary.DurationSeconds)
		}
		if summary.TrafficAware {
			t.Error("expected summary not to be traffic-aware")
		}
		if len(summary.Geometry) != 3 {
			t.Errorf("expected 3 geometry points, got %d", len(summary.Geometry))
		}
		if len(summary.Steps) != 2 {
			t.Fatalf("expected 2 steps, got %d", len(summary.Steps))
		}
		if summary.Steps[0].Instruction != "Head north on Jalan Ampang" {
			t.Errorf("expected first instruction to carry over, got %q", summary.Steps[0].Instruction)
		}
	})
	t.Run("request carries the API key and the profile path", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			if got := req.Header.Get("Authorization"); got != testAPIKey {
				t.Errorf("expected Authorization header to be %q, got %q", testAPIKey, got)
			}
			if !strings.Contains(req.URL.Path, "cycling-regular") {
				t.Errorf("expected profile path segment cycling-regular, got %q", req.URL.Path)
			}
			return fixtureRoundtrip(t, directionsFile)(req)
		}

		router := testRouterWithRoundtripFunc(t, rtFn)
		if _, err := router.Route(t.Context(), testStart, testEnd, routing.ModeBike); err != nil {
			t.Fatal(err)
		}
	})
	t.Run("routing fails on empty feature set", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 200,
				Body:       stdhttp.NoBody,
				Header:     make(stdhttp.Header),
			}, nil
		}

		router := testRouterWithRoundtripFunc(t, rtFn)
		_, err := router.Route(t.Context(), testStart, testEnd, routing.ModeCar)
		if err == nil {
			t.Fatal("expected API request to fail")
		}
	})
	t.Run("routing fails on non-200 response", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return &stdhttp.Response{
				StatusCode: 401,
				Body:       stdhttp.NoBody,
				Header:     make(stdhttp.Header),
			}, nil
		}

		router := testRouterWithRoundtripFunc(t, rtFn)
		_, err := router.Route(t.Context(), testStart, testEnd, routing.ModeCar)
		if err == nil {
			t.Fatal("expected API request to fail")
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
