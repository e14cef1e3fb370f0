// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for the package tests.
package testhelper

import (
	"net/http"
	"os"
	"testing"
)

// TestOnlineAPIURL is a reachable endpoint used by tests that need a real network round trip.
const TestOnlineAPIURL = "https://api.openweathermap.org/data/2.5/forecast"

// MockRoundTripper is an http.RoundTripper that delegates every request to Fn.
type MockRoundTripper struct {
	Fn func(*http.Request) (*http.Response, error)
}

func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// PerformIntegrationTests skips the calling test unless PERFORM_INTEGRATION_TESTS is set.
func PerformIntegrationTests(t *testing.T) {
	t.Helper()
	if os.Getenv("PERFORM_INTEGRATION_TESTS") == "" {
		t.Skip("skipping online integration test, set PERFORM_INTEGRATION_TESTS to run it")
	}
}
