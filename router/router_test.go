// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/survey-places/middleware"
	"github.com/danielhkuo/survey-places/testutil"
)

func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) http.Handler {
	t.Helper()
	store := testutil.SetupTestStore(t)
	return NewRouter(store, testutil.GetTestConfig(), limiter)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t, nil)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != Banner {
		t.Errorf("Expected body '%s', got '%s'", Banner, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t, nil)

	testCases := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{"GET", "/surveys", http.StatusOK},
		{"GET", "/surveys/", http.StatusOK},
		{"POST", "/surveys", http.StatusBadRequest},
		{"POST", "/surveys/", http.StatusBadRequest},
		{"GET", "/survey-responses", http.StatusOK},
		{"GET", "/survey-responses/", http.StatusOK},
		{"POST", "/survey-responses", http.StatusBadRequest},
		{"POST", "/survey-responses/", http.StatusBadRequest},
		{"GET", "/unknown", http.StatusNotFound},
		{"GET", "/surveys/1", http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d. Body: %s", tc.expectedStatus, tc.method, tc.path, w.Code, w.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t, nil)

	// Test that unsupported methods on defined routes return 405
	testCases := []struct {
		method string
		path   string
		allow  string
	}{
		{"POST", "/health", "GET, HEAD"},
		{"POST", "/", "GET, HEAD"},
		{"PUT", "/surveys", "GET, HEAD, POST"},
		{"DELETE", "/surveys/", "GET, HEAD, POST"},
		{"PATCH", "/survey-responses", "GET, HEAD, POST"},
		{"DELETE", "/survey-responses/", "GET, HEAD, POST"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			testutil.AssertStatus(t, w, http.StatusMethodNotAllowed)
			if got := w.Header().Get("Allow"); got != tc.allow {
				t.Errorf("Expected Allow %q, got %q", tc.allow, got)
			}
			testutil.AssertMessage(t, w, "Method not allowed")
		})
	}
}

func TestNotFoundIsJSON(t *testing.T) {
	mux := newTestRouter(t, nil)

	for _, path := range []string{"/unknown", "/surveys/1", "/survey-responses/abc/def"} {
		t.Run(path, func(t *testing.T) {
			for _, method := range []string{"GET", "POST"} {
				req := httptest.NewRequest(method, path, nil)
				w := httptest.NewRecorder()

				mux.ServeHTTP(w, req)

				testutil.AssertStatus(t, w, http.StatusNotFound)
				if ct := w.Header().Get("Content-Type"); ct != "application/json" {
					t.Errorf("%s %s: expected JSON content type, got %q", method, path, ct)
				}
				testutil.AssertMessage(t, w, "Not found")
			}
		})
	}
}

func TestRequestIDHeader(t *testing.T) {
	mux := newTestRouter(t, nil)

	req := httptest.NewRequest("GET", "/surveys", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected a generated request id header")
	}
}

func TestCORSPreflight(t *testing.T) {
	mux := newTestRouter(t, nil)

	req := httptest.NewRequest("OPTIONS", "/surveys", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code >= 300 {
		t.Errorf("Expected successful preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected Access-Control-Allow-Origin '*', got '%s'", got)
	}
}

func TestRateLimitedRouter(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 2, time.Minute, false)
	mux := newTestRouter(t, limiter)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/health", nil)
		req.RemoteAddr = "203.0.113.9:1234"
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("Expected burst of 2 to pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected third request to be limited, got %d", codes[2])
	}
}

func TestEndToEnd(t *testing.T) {
	mux := newTestRouter(t, nil)

	req := testutil.MakeRequest("POST", "/surveys/", map[string]any{
		"survey_name": "Routing", "available_places": 1, "user_id": 4,
	}, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	req = testutil.MakeRequest("POST", "/survey-responses", map[string]any{
		"survey_id": 1, "user_id": 5,
	}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	req = testutil.MakeRequest("POST", "/survey-responses/", map[string]any{
		"survey_id": 1, "user_id": 6,
	}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	req = testutil.MakeRequest("GET", "/survey-responses?survey=1", nil, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), `"user_id":5`) {
		t.Errorf("Expected the recorded response in listing, got %s", w.Body.String())
	}
}
