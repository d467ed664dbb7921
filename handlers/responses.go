// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/survey-places/db"
	"github.com/danielhkuo/survey-places/middleware"
	"github.com/danielhkuo/survey-places/models"
	"github.com/danielhkuo/survey-places/validate"
)

type ResponseHandler struct {
	store *db.Store
}

func NewResponseHandler(store *db.Store) *ResponseHandler {
	return &ResponseHandler{store: store}
}

// ListResponses handles GET /survey-responses
func (h *ResponseHandler) ListResponses(w http.ResponseWriter, r *http.Request) {
	filter, err := validate.ListResponsesQuery(r.Context(), h.store, r.URL.Query())
	if err != nil {
		respondError(w, r, err, "failed to validate survey response query")
		return
	}

	responses, err := h.store.ListResponses(r.Context(), filter)
	if err != nil {
		respondError(w, r, err, "failed to list survey responses")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResponseList(responses))
}

// CreateResponse handles POST /survey-responses
func (h *ResponseHandler) CreateResponse(w http.ResponseWriter, r *http.Request) {
	params, err := middleware.ParseParams(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := validate.CreateResponseBody(r.Context(), h.store, params)
	if err != nil {
		respondError(w, r, err, "failed to validate survey response")
		return
	}

	// The survey may have filled up since validation
	resp, err := h.store.InsertResponse(r.Context(), req.SurveyID, req.UserID)
	switch {
	case errors.Is(err, db.ErrSurveyFull):
		full := validate.Full(req.SurveyID)
		middleware.ErrorResponse(w, full.Status(), full.Message)
		return
	case errors.Is(err, db.ErrNotFound):
		missing := validate.SurveyNotFound(req.SurveyParam)
		middleware.ErrorResponse(w, missing.Status(), missing.Message)
		return
	case err != nil:
		respondError(w, r, err, "failed to insert survey response")
		return
	}

	slog.Info("survey response created",
		"request_id", middleware.RequestID(r.Context()),
		"survey_id", resp.SurveyID,
		"response_id", resp.ID,
		"user_id", resp.UserID,
	)

	middleware.JSONResponse(w, http.StatusCreated, resp)
}
