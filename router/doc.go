// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the survey API.

# Route Registration

NewRouter returns the route table wrapped in recovery, CORS and (optionally)
per-IP rate limiting:

	handler := router.NewRouter(store, cfg, limiter)

# Endpoints

Health:

	GET /health

Surveys:

	GET  /surveys?user=U - List surveys
	POST /surveys        - Create survey

Survey responses:

	GET  /survey-responses?survey=S&user=U - List responses
	POST /survey-responses                 - Record a response

Each resource also answers on its trailing-slash path. Other methods on a
known path get 405 with an Allow header, and unknown paths get 404. Both use
the {"message": ...} body every handler error uses.
*/
package router
