// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the survey-places API server.

Users create surveys with a fixed number of available places, and other users
record responses against them until every place is taken.

# Starting the Server

With no configuration the server listens on 3318 and stores data in a local
sqlite file:

	go run .

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Settings may also come from a .env file in the working directory.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string (required for postgres)
  - CORS_ORIGINS (-origins): comma separated origins (default: *)
  - RATE_LIMIT_RPS (-rate): requests per second per client IP, 0 disables (default: 20)
  - RATE_LIMIT_BURST (-burst): rate limit burst (default: 40)
  - TRUST_PROXY (-trust-proxy): rate limit by X-Forwarded-For / X-Real-IP
    instead of the peer address; only behind a proxy that sets them (default: false)
  - LOG_FORMAT: text or json (default: text)
  - LOG_LEVEL: debug, info, warn or error (default: info)

# Architecture

  - handlers: HTTP request handlers (surveys, survey responses)
  - validate: request validation with typed errors
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, rate limiting, JSON and body helpers
  - models: Domain types and wire serialization
  - db: Connections, schema and the Store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
