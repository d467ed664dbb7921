// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /surveys", middleware.WithLogging(handler))

Logs request start and completion (status, duration_ms). Each request gets
an id from X-Request-ID or a new UUID; it is echoed in the response header
and available to handlers via RequestID(r.Context()).

# Recovery

Recover converts panics into a 500 JSON response and logs the stack.

# CORS

	handler := middleware.CORS(cfg.AllowedOrigins)(mux)

Backed by github.com/rs/cors. Allows GET, POST and OPTIONS.

# Rate Limiting

RateLimiter keeps a token bucket per client IP (golang.org/x/time/rate):

	rl := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, time.Hour, cfg.TrustProxy)
	handler = rl.Middleware(handler)

Call Sweep periodically to forget idle clients.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

# Request Bodies

ParseParams accepts JSON, urlencoded and multipart bodies and returns
models.Params:

	params, err := middleware.ParseParams(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
