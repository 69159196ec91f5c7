// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for the go-tripfare test suites.
package testhelper

import (
	"net/http"
	"os"
	"testing"
)

// TestOnlineAPIURL is a public API endpoint used by integration tests that require
// network access.
const TestOnlineAPIURL = "https://nominatim.openstreetmap.org/status"

// MockRoundTripper is a http.RoundTripper that invokes a custom roundtrip function,
// so provider tests can serve canned API responses without network access.
type MockRoundTripper struct {
	Fn func(req *http.Request) (*http.Response, error)
}

// RoundTrip satisfies the http.RoundTripper interface.
func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// PerformIntegrationTests skips the calling test unless the PERFORM_INTEGRATION_TESTS
// environment variable is set. Integration tests hit live upstream APIs.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if os.Getenv("PERFORM_INTEGRATION_TESTS") == "" {
		t.Skip("skipping integration tests, set PERFORM_INTEGRATION_TESTS to enable")
	}
}
