// Copyright (c) 2026 Longbox. All rights reserved.
// Author: dev@longboxhq.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/longboxhq/longbox/internal/platform/apperr"
	"github.com/longboxhq/longbox/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Unknown fields are rejected: every API payload maps field-for-field onto a
persisted schema, so an unrecognized key is a client error, never something
to guess about.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validation AppError if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		if field, ok := unknownField(err); ok {
			return apperr.ValidationError("Unknown field", apperr.FieldError{
				Field:   field,
				Message: "Field is not part of the resource schema",
			})
		}
		return validate.ErrInvalidJSON
	}

	return nil
}

/*
IntParam retrieves a named URL parameter and parses it as a 64-bit integer
resource identifier.

Returns:
  - int64: The parsed identifier
  - error: validation AppError when the parameter is not an integer
*/
func IntParam(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.ValidationError("Invalid identifier", apperr.FieldError{
			Field:   name,
			Message: "Must be an integer",
		})
	}

	return id, nil
}

// unknownField extracts the offending key from encoding/json's unknown-field
// error. The error has no typed form, so the message is the only handle.
func unknownField(err error) (string, bool) {
	const marker = `json: unknown field "`

	msg := err.Error()
	if !strings.HasPrefix(msg, marker) {
		return "", false
	}

	return strings.TrimSuffix(strings.TrimPrefix(msg, marker), `"`), true
}
