// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the survey API.

# Handler Types

Each handler is a struct with a store dependency:

  - SurveyHandler: list and create surveys
  - ResponseHandler: list and create survey responses

Handlers are created via constructor functions that accept *db.Store:

	surveyHandler := handlers.NewSurveyHandler(store)

# Request Flow

Every handler validates first and only then touches the store:

	request → validate → store → JSON

A *validate.Error short-circuits with its own status and a {"message"} body.
Any other error is logged and answered with 500.

# Surveys

	GET  /surveys?user=U → ListSurveys (all surveys, or those owned by U)
	POST /surveys        → CreateSurvey (survey_name, available_places, user_id)

# Survey Responses

	GET  /survey-responses?survey=S&user=U → ListResponses (filters ANDed)
	POST /survey-responses                 → CreateResponse (survey_id, user_id)

CreateResponse answers 403 once a survey has as many responses as it has
available places. The store checks capacity again inside the insert
transaction, so concurrent requests cannot overfill a survey.
*/
package handlers
