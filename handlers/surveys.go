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

type SurveyHandler struct {
	store *db.Store
}

func NewSurveyHandler(store *db.Store) *SurveyHandler {
	return &SurveyHandler{store: store}
}

// ListSurveys handles GET /surveys
func (h *SurveyHandler) ListSurveys(w http.ResponseWriter, r *http.Request) {
	filter, err := validate.ListSurveysQuery(r.URL.Query())
	if err != nil {
		respondError(w, r, err, "failed to validate survey query")
		return
	}

	surveys, err := h.store.ListSurveys(r.Context(), filter)
	if err != nil {
		respondError(w, r, err, "failed to list surveys")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SurveyList(surveys))
}

// CreateSurvey handles POST /surveys
func (h *SurveyHandler) CreateSurvey(w http.ResponseWriter, r *http.Request) {
	params, err := middleware.ParseParams(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req, err := validate.CreateSurveyBody(params)
	if err != nil {
		respondError(w, r, err, "failed to validate survey")
		return
	}

	survey, err := h.store.InsertSurvey(r.Context(), req.SurveyName, req.AvailablePlaces, req.UserID)
	if err != nil {
		respondError(w, r, err, "failed to insert survey")
		return
	}

	slog.Info("survey created",
		"request_id", middleware.RequestID(r.Context()),
		"survey_id", survey.ID,
		"user_id", survey.UserID,
		"available_places", survey.AvailablePlaces,
	)

	middleware.JSONResponse(w, http.StatusCreated, survey)
}

// respondError sends validation failures with their own status and message.
// Anything else is logged and reported as a 500.
func respondError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		middleware.ErrorResponse(w, verr.Status(), verr.Message)
		return
	}

	slog.Error(logMsg, "request_id", middleware.RequestID(r.Context()), "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
}
