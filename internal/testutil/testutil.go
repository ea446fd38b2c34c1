// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HansenHomeAI/v0-spaceport-website-sub007/internal/terrain"
)

// AssertStatusCode checks that the response status code matches expected.
func AssertStatusCode(t *testing.T, got, want int) {
	t.Helper()
	if got != want {
		t.Errorf("status code = %d, want %d", got, want)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// NewJSONRequest creates a test HTTP request carrying body marshalled as JSON.
func NewJSONRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshalling request body: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// FlatModel builds a uniform-elevation model large enough for a 2000 ft
// straight test path along the x axis.
func FlatModel(t *testing.T, elevationFt float64) *terrain.ElevationModel {
	t.Helper()
	const cols, rows = 17, 6
	elevs := make([]float64, cols*rows)
	for i := range elevs {
		elevs[i] = elevationFt
	}
	m, err := terrain.NewElevationModel(200, cols, rows, -500, -500, elevs)
	if err != nil {
		t.Fatalf("building flat model: %v", err)
	}
	return m
}
