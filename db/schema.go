// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/survey-places/cliparse"
)

// Open connects to a sqlite or postgres database and verifies the connection.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case cliparse.DatabaseSQLite:
		conn, err := sql.Open("sqlite", withForeignKeys(url))
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		// One writer at a time; this also serializes the capacity check
		conn.SetMaxOpenConns(1)
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return conn, nil
	case cliparse.DatabasePostgres:
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		if err := conn.Ping(); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}
}

func withForeignKeys(url string) string {
	if strings.Contains(url, "foreign_keys") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, conn *sql.DB, dbType string) error {
	schema := sqliteSchema
	if dbType == cliparse.DatabasePostgres {
		schema = postgresSchema
	}

	_, err := conn.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres
func rebind(dbType, query string) string {
	if dbType != cliparse.DatabasePostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS survey (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    survey_name TEXT NOT NULL,
    available_places INTEGER NOT NULL CHECK (available_places >= 0),
    user_id INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_survey_user_id ON survey(user_id);

CREATE TABLE IF NOT EXISTS survey_response (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    survey_id INTEGER NOT NULL REFERENCES survey(id),
    user_id INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_survey_response_survey_id ON survey_response(survey_id);
CREATE INDEX IF NOT EXISTS idx_survey_response_user_id ON survey_response(user_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS survey (
    id BIGSERIAL PRIMARY KEY,
    survey_name VARCHAR(150) NOT NULL,
    available_places BIGINT NOT NULL CHECK (available_places >= 0),
    user_id BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_survey_user_id ON survey(user_id);

CREATE TABLE IF NOT EXISTS survey_response (
    id BIGSERIAL PRIMARY KEY,
    survey_id BIGINT NOT NULL REFERENCES survey(id),
    user_id BIGINT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_survey_response_survey_id ON survey_response(survey_id);
CREATE INDEX IF NOT EXISTS idx_survey_response_user_id ON survey_response(user_id);
`
