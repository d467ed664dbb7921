// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first if present. It never
overrides variables that are already set in the environment.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: "sqlite" (default) or "postgres"
  - DatabaseURL: Connection string (default for sqlite: file:surveys.db)
  - AllowedOrigins: CORS origins (default: *)
  - RateLimit: Requests per second per client IP (default: 20, 0 disables)
  - RateBurst: Rate limiter burst (default: 40)

# CLI Flags

	-p        Server port
	-d        Database URL
	-t        Database type
	-origins  Comma separated CORS origins
	-rate     Requests per second per client
	-burst    Rate limiter burst

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	CORS_ORIGINS     → -origins
	RATE_LIMIT_RPS   → -rate
	RATE_LIMIT_BURST → -burst

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_TYPE is neither sqlite nor postgres
  - DATABASE_URL is missing for postgres
  - a numeric variable does not parse
*/
package cliparse
