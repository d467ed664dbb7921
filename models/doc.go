// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, filter, and wire types for the API.

# Domain Types

  - Survey: id, survey_name, available_places, user_id
  - SurveyResponse: id, survey_id, user_id, created_at

Both are append-only. A survey accepts at most available_places responses.

# Serialization

Survey marshals with plain struct tags. SurveyResponse renders created_at as
UTC with microsecond precision:

	2025-03-01T09:30:00.123456Z

SurveyList and ResponseList turn nil slices into empty ones so list
endpoints always return a JSON array.

# Request Params

Params carries body fields as strings, regardless of whether the client
sent JSON or a form:

	p := models.ParamsFromJSON(body)
	name, ok := p.Get(models.FieldSurveyName)

Falsy values are dropped on the way in. A JSON 0 is therefore missing,
while the string "0" is present.

# Error Response

	{"message": "Survey with id 9 does not exist"}
*/
package models
