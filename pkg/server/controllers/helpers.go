/* Copyright 2025 StudyFlow Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	pkgErrors "github.com/pkg/errors"
	"github.com/studyflow/studyflow/pkg/server/app"
	"github.com/studyflow/studyflow/pkg/server/log"
)

var (
	queryDecoder = schema.NewDecoder()
	validate     = validator.New()
)

func init() {
	queryDecoder.IgnoreUnknownKeys(true)
}

// successResponse is the envelope for successful responses
type successResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// errorResponse is the envelope for failed responses
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondJSON writes the given data wrapped in the success envelope
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(successResponse{Success: true, Data: data}); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// respondError writes an error response with the given status code
func respondError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(errorResponse{Success: false, Error: message}); err != nil {
		log.ErrorWrap(err, "encoding error response")
	}
}

// statusCodeForError maps an application error to an HTTP status code.
// Unrecognized errors, upstream generation failures included, fall through
// to a 500.
func statusCodeForError(err error) int {
	cause := pkgErrors.Cause(err)

	switch cause {
	case app.ErrNotFound:
		return http.StatusNotFound
	case app.ErrForbidden:
		return http.StatusForbidden
	case app.ErrLoginInvalid:
		return http.StatusUnauthorized
	case app.ErrDuplicateEmail:
		return http.StatusConflict
	case app.ErrEmailRequired, app.ErrNameRequired, app.ErrPasswordRequired, app.ErrPasswordTooShort:
		return http.StatusBadRequest
	}

	if app.IsValidationError(err) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

// handleJSONError logs the error and responds with the mapped status code
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := statusCodeForError(err)

	if statusCode >= 500 {
		log.ErrorWrap(err, msg)
		respondError(w, statusCode, msg)
		return
	}

	respondError(w, statusCode, pkgErrors.Cause(err).Error())
}

// parseRequestData decodes the JSON request body into the given struct and
// validates it
func parseRequestData(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return app.NewValidationError("Invalid request body")
	}

	if err := validate.Struct(dst); err != nil {
		return app.NewValidationError(err.Error())
	}

	return nil
}

// parseQuery decodes the query string into the given struct
func parseQuery(r *http.Request, dst interface{}) error {
	if err := queryDecoder.Decode(dst, r.URL.Query()); err != nil {
		return app.NewValidationError("Invalid query string")
	}

	return nil
}

// pathID parses the integer path variable with the given name
func pathID(r *http.Request, name string) (int, error) {
	vars := mux.Vars(r)

	id, err := strconv.Atoi(vars[name])
	if err != nil {
		return 0, app.ErrNotFound
	}

	return id, nil
}

func setSessionCookie(w http.ResponseWriter, key string, expires time.Time) {
	cookie := http.Cookie{
		Name:     "id",
		Value:    key,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
	}
	http.SetCookie(w, &cookie)
}

func unsetSessionCookie(w http.ResponseWriter) {
	cookie := http.Cookie{
		Name:     "id",
		Value:    "",
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.SetCookie(w, &cookie)
}
