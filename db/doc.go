// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, schema creation, and persistence.

# Connecting

Open picks the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

  - sqlite: modernc.org/sqlite, foreign keys on, a single open connection
  - postgres: github.com/lib/pq

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - survey: name, available_places, owning user_id
  - survey_response: one row per accepted response, with created_at

# Relationships

	survey 1──* survey_response

There is no cascading delete; nothing in the API deletes rows.

# Store

Store wraps the connection with the operations the handlers need:

	store := db.NewStore(conn, cfg.DatabaseType)
	survey, err := store.InsertSurvey(ctx, "Lunch", 30, 1)
	resp, err := store.InsertResponse(ctx, survey.ID, 2)

InsertResponse re-checks capacity inside a transaction and returns
ErrSurveyFull instead of overfilling a survey. Listings are ordered by id.
*/
package db
