// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/survey-places/cliparse"
	"github.com/danielhkuo/survey-places/db"
	"github.com/danielhkuo/survey-places/handlers"
	"github.com/danielhkuo/survey-places/middleware"
)

// Banner is the body of GET /
const Banner = "survey-places API v1"

// NewRouter builds the route table and wraps it in the shared middleware.
// A nil limiter disables rate limiting.
func NewRouter(store *db.Store, cfg cliparse.Config, limiter *middleware.RateLimiter) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	surveyHandler := handlers.NewSurveyHandler(store)
	responseHandler := handlers.NewResponseHandler(store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/health", methodNotAllowed("GET, HEAD"))

	// Surveys
	for _, path := range []string{"/surveys", "/surveys/{$}"} {
		mux.HandleFunc("GET "+path, middleware.WithLogging(surveyHandler.ListSurveys))
		mux.HandleFunc("POST "+path, middleware.WithLogging(surveyHandler.CreateSurvey))
		mux.HandleFunc(path, methodNotAllowed("GET, HEAD, POST"))
	}

	// Survey responses
	for _, path := range []string{"/survey-responses", "/survey-responses/{$}"} {
		mux.HandleFunc("GET "+path, middleware.WithLogging(responseHandler.ListResponses))
		mux.HandleFunc("POST "+path, middleware.WithLogging(responseHandler.CreateResponse))
		mux.HandleFunc(path, methodNotAllowed("GET, HEAD, POST"))
	}

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(Banner))
	})

	// Everything else gets the same JSON error body as the handlers
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			methodNotAllowed("GET, HEAD")(w, r)
			return
		}
		middleware.ErrorResponse(w, http.StatusNotFound, "Not found")
	})

	var handler http.Handler = mux
	if limiter != nil {
		handler = limiter.Middleware(handler)
	}
	handler = middleware.CORS(cfg.AllowedOrigins)(handler)

	return middleware.Recover(handler)
}

// methodNotAllowed answers a known path hit with an unsupported method
func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}
