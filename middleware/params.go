// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/danielhkuo/survey-places/models"
)

const maxBodyBytes = 1 << 20

// ErrBadBody is returned when a request body cannot be decoded
var ErrBadBody = errors.New("invalid request body")

// ParseParams reads a JSON, urlencoded, or multipart body into Params.
// An empty body yields empty Params.
func ParseParams(r *http.Request) (models.Params, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadBody, err)
		}
		return models.ParamsFromForm(r.PostForm), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadBody, err)
		}
		return models.ParamsFromForm(r.MultipartForm.Value), nil
	default:
		return parseJSONParams(r)
	}
}

func parseJSONParams(r *http.Request) (models.Params, error) {
	if r.Body == nil {
		return models.Params{}, nil
	}
	defer r.Body.Close()

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	if len(data) > maxBodyBytes {
		return nil, fmt.Errorf("%w: body too large", ErrBadBody)
	}
	if strings.TrimSpace(string(data)) == "" {
		return models.Params{}, nil
	}

	var body map[string]any
	if err := ParseJSON(bytes.NewReader(data), &body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	return models.ParamsFromJSON(body), nil
}

// ParseJSON decodes a single JSON value, keeping numbers as json.Number
func ParseJSON(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
