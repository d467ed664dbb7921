package models

import "time"

// Query parameter names
const (
	QueryUser   = "user"
	QuerySurvey = "survey"
)

// Body field names
const (
	FieldSurveyName      = "survey_name"
	FieldAvailablePlaces = "available_places"
	FieldUserID          = "user_id"
	FieldSurveyID        = "survey_id"
)

// Longest survey name the store accepts
const MaxSurveyNameLength = 150

// Domain types

type Survey struct {
	ID              int64  `json:"id"`
	SurveyName      string `json:"survey_name"`
	AvailablePlaces int64  `json:"available_places"`
	UserID          int64  `json:"user_id"`
}

type SurveyResponse struct {
	ID        int64     `json:"id"`
	SurveyID  int64     `json:"survey_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Filters

// SurveyFilter narrows a survey listing. Nil fields are not applied.
type SurveyFilter struct {
	UserID *int64
}

// ResponseFilter narrows a response listing. Set fields are ANDed.
type ResponseFilter struct {
	SurveyID *int64
	UserID   *int64
}

// Error response

type ErrorResponse struct {
	Message string `json:"message"`
}
