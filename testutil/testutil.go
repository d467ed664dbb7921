// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/danielhkuo/survey-places/cliparse"
	"github.com/danielhkuo/survey-places/db"
	"github.com/danielhkuo/survey-places/models"
)

// TestDBURLEnv points the tests at a PostgreSQL database instead of sqlite
const TestDBURLEnv = "TEST_DATABASE_URL"

// TestDBType returns the database type the tests run against
func TestDBType() string {
	if os.Getenv(TestDBURLEnv) != "" {
		return cliparse.DatabasePostgres
	}
	return cliparse.DatabaseSQLite
}

// SetupTestDB creates a fresh test database with the full schema.
// In-memory sqlite by default; PostgreSQL when TEST_DATABASE_URL is set.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbType := TestDBType()
	dsn := ":memory:"
	if dbType == cliparse.DatabasePostgres {
		dsn = os.Getenv(TestDBURLEnv)
	}

	conn, err := db.Open(dbType, dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if dbType == cliparse.DatabasePostgres {
		// Clean up tables before each test
		_, err = conn.Exec(`
			DROP TABLE IF EXISTS survey_response CASCADE;
			DROP TABLE IF EXISTS survey CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(context.Background(), conn, dbType); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore wraps a fresh test database in a Store, closed on cleanup
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	conn := SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })

	return db.NewStore(conn, TestDBType())
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   TestDBType(),
		DatabaseURL:    ":memory:",
		AllowedOrigins: []string{"*"},
		RateLimit:      0,
		RateBurst:      1,
	}
}

// CreateTestSurvey inserts a survey and returns it
func CreateTestSurvey(t *testing.T, store *db.Store, name string, places, userID int64) models.Survey {
	t.Helper()

	survey, err := store.InsertSurvey(context.Background(), name, places, userID)
	if err != nil {
		t.Fatalf("Failed to create test survey: %v", err)
	}
	return survey
}

// CreateTestResponse records a response against a survey with free places
func CreateTestResponse(t *testing.T, store *db.Store, surveyID, userID int64) models.SurveyResponse {
	t.Helper()

	resp, err := store.InsertResponse(context.Background(), surveyID, userID)
	if err != nil {
		t.Fatalf("Failed to create test survey response: %v", err)
	}
	return resp
}

// MakeRequest creates an HTTP test request with an optional JSON body
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates an HTTP test request with a urlencoded body
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// AssertMessage checks the {"message"} body of an error response
func AssertMessage(t *testing.T, w *httptest.ResponseRecorder, expected string) {
	t.Helper()
	var resp models.ErrorResponse
	AssertJSON(t, w, &resp)
	if resp.Message != expected {
		t.Errorf("Expected message %q, got %q", expected, resp.Message)
	}
}
