// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"unicode/utf8"

	"github.com/danielhkuo/survey-places/db"
	"github.com/danielhkuo/survey-places/models"
)

// Validation failure kinds
var (
	ErrInvalid   = errors.New("invalid")
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// Error is a rejected request. Kind is one of ErrInvalid, ErrNotFound or
// ErrForbidden; Message is shown to the client as-is.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// Status maps the failure kind to an HTTP status code
func (e *Error) Status() int {
	switch {
	case errors.Is(e.Kind, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(e.Kind, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

func invalid(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalid, Message: fmt.Sprintf(format, args...)}
}

// SurveyReader is the slice of the store the validators read from
type SurveyReader interface {
	GetSurvey(ctx context.Context, id int64) (models.Survey, error)
	CountResponses(ctx context.Context, surveyID int64) (int64, error)
}

// NewSurvey is a validated POST /surveys body
type NewSurvey struct {
	SurveyName      string
	AvailablePlaces int64
	UserID          int64
}

// NewResponse is a validated POST /survey-responses body
type NewResponse struct {
	SurveyID int64
	UserID   int64

	// SurveyParam is survey_id as the client sent it
	SurveyParam string
}

// RequireIntegerString accepts only non-empty runs of ASCII digits that fit
// in an int64. Signs are rejected, so negative numbers never pass.
func RequireIntegerString(value, field string) (int64, error) {
	if value == "" {
		return 0, invalid("%s parameter must be an integer", field)
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return 0, invalid("%s parameter must be an integer", field)
		}
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, invalid("%s parameter must be an integer", field)
	}
	return n, nil
}

// RequireSurveyExists parses the id and loads the survey it names
func RequireSurveyExists(ctx context.Context, store SurveyReader, value, field string) (models.Survey, error) {
	id, err := RequireIntegerString(value, field)
	if err != nil {
		return models.Survey{}, err
	}

	survey, err := store.GetSurvey(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return models.Survey{}, SurveyNotFound(value)
	}
	if err != nil {
		return models.Survey{}, err
	}

	return survey, nil
}

// ListSurveysQuery validates GET /surveys query parameters
func ListSurveysQuery(query url.Values) (models.SurveyFilter, error) {
	var filter models.SurveyFilter

	if user := query.Get(models.QueryUser); user != "" {
		id, err := RequireIntegerString(user, models.FieldUserID)
		if err != nil {
			return filter, err
		}
		filter.UserID = &id
	}

	return filter, nil
}

// CreateSurveyBody validates a POST /surveys body
func CreateSurveyBody(params models.Params) (NewSurvey, error) {
	name, okName := params.Get(models.FieldSurveyName)
	places, okPlaces := params.Get(models.FieldAvailablePlaces)
	user, okUser := params.Get(models.FieldUserID)
	if !okName || !okPlaces || !okUser {
		return NewSurvey{}, invalid("survey_name, available_places, and user_id required to create a new survey")
	}

	if utf8.RuneCountInString(name) > models.MaxSurveyNameLength {
		return NewSurvey{}, invalid("survey_name must be at most %d characters", models.MaxSurveyNameLength)
	}

	n, err := RequireIntegerString(places, models.FieldAvailablePlaces)
	if err != nil {
		return NewSurvey{}, err
	}

	uid, err := RequireIntegerString(user, models.FieldUserID)
	if err != nil {
		return NewSurvey{}, err
	}

	return NewSurvey{SurveyName: name, AvailablePlaces: n, UserID: uid}, nil
}

// ListResponsesQuery validates GET /survey-responses query parameters. The survey
// filter is checked first and must name an existing survey.
func ListResponsesQuery(ctx context.Context, store SurveyReader, query url.Values) (models.ResponseFilter, error) {
	var filter models.ResponseFilter

	if survey := query.Get(models.QuerySurvey); survey != "" {
		s, err := RequireSurveyExists(ctx, store, survey, models.FieldSurveyID)
		if err != nil {
			return filter, err
		}
		filter.SurveyID = &s.ID
	}

	if user := query.Get(models.QueryUser); user != "" {
		id, err := RequireIntegerString(user, models.FieldUserID)
		if err != nil {
			return filter, err
		}
		filter.UserID = &id
	}

	return filter, nil
}

// CreateResponseBody validates a POST /survey-responses body, including the
// capacity check. The store repeats the capacity check when inserting.
func CreateResponseBody(ctx context.Context, store SurveyReader, params models.Params) (NewResponse, error) {
	surveyParam, okSurvey := params.Get(models.FieldSurveyID)
	user, okUser := params.Get(models.FieldUserID)
	if !okSurvey || !okUser {
		return NewResponse{}, invalid("survey_id and user_id required to create a new survey response")
	}

	survey, err := RequireSurveyExists(ctx, store, surveyParam, models.FieldSurveyID)
	if err != nil {
		return NewResponse{}, err
	}

	count, err := store.CountResponses(ctx, survey.ID)
	if err != nil {
		return NewResponse{}, err
	}
	if count >= survey.AvailablePlaces {
		return NewResponse{}, Full(survey.ID)
	}

	uid, err := RequireIntegerString(user, models.FieldUserID)
	if err != nil {
		return NewResponse{}, err
	}

	return NewResponse{SurveyID: survey.ID, UserID: uid, SurveyParam: surveyParam}, nil
}

// SurveyNotFound is the rejection for an unknown survey id, echoed as sent
func SurveyNotFound(value string) *Error {
	return &Error{
		Kind:    ErrNotFound,
		Message: fmt.Sprintf("Survey with id %s does not exist", value),
	}
}

// Full is the rejection for a survey that has used all its places
func Full(surveyID int64) *Error {
	return &Error{
		Kind:    ErrForbidden,
		Message: fmt.Sprintf("Survey id %d has already received its maximum number of responses", surveyID),
	}
}
