// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// TimestampFormat is the wire format of created_at: UTC with microseconds.
const TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// MarshalJSON renders created_at in TimestampFormat
func (r SurveyResponse) MarshalJSON() ([]byte, error) {
	type plain SurveyResponse
	return json.Marshal(struct {
		plain
		CreatedAt string `json:"created_at"`
	}{
		plain:     plain(r),
		CreatedAt: r.CreatedAt.UTC().Format(TimestampFormat),
	})
}

// SurveyList returns surveys as a JSON-ready slice, never nil.
func SurveyList(surveys []Survey) []Survey {
	if surveys == nil {
		return []Survey{}
	}
	return surveys
}

// ResponseList returns responses as a JSON-ready slice, never nil.
func ResponseList(responses []SurveyResponse) []SurveyResponse {
	if responses == nil {
		return []SurveyResponse{}
	}
	return responses
}

// Params holds request body fields as text. Falsy values (absent, null, "",
// numeric zero, false, empty arrays and objects) are never stored, so a
// lookup that fails means "missing".
type Params map[string]string

// Get returns the value for key and whether it is present.
func (p Params) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// ParamsFromForm keeps the first non-empty value of each form key.
func ParamsFromForm(form map[string][]string) Params {
	p := Params{}
	for k, vs := range form {
		if len(vs) > 0 && vs[0] != "" {
			p[k] = vs[0]
		}
	}
	return p
}

// ParamsFromJSON normalizes a decoded JSON object. Numbers must have been
// decoded as json.Number so their text survives.
func ParamsFromJSON(body map[string]any) Params {
	p := Params{}
	for k, v := range body {
		if s, ok := jsonText(v); ok {
			p[k] = s
		}
	}
	return p
}

func jsonText(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, val != ""
	case json.Number:
		if f, err := strconv.ParseFloat(val.String(), 64); err == nil && f == 0 {
			return "", false
		}
		return val.String(), true
	case bool:
		return strconv.FormatBool(val), val
	case []any:
		return fmt.Sprint(val), len(val) > 0
	case map[string]any:
		return fmt.Sprint(val), len(val) > 0
	default:
		s := strings.TrimSpace(fmt.Sprint(val))
		return s, s != ""
	}
}
