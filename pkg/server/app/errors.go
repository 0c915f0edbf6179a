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

package app

import (
	"github.com/pkg/errors"
)

var (
	// ErrNotFound is an error for an absent resource
	ErrNotFound = errors.New("not found")
	// ErrForbidden is an error for an operation the acting user is not authorized for
	ErrForbidden = errors.New("forbidden")
	// ErrLoginInvalid is an error for invalid login credentials
	ErrLoginInvalid = errors.New("Wrong email and password combination")
	// ErrDuplicateEmail is an error for a registration with an email that is already taken
	ErrDuplicateEmail = errors.New("A user with this email already exists")
	// ErrEmailRequired is an error for an empty email
	ErrEmailRequired = errors.New("Email is required")
	// ErrNameRequired is an error for an empty name
	ErrNameRequired = errors.New("Name is required")
	// ErrPasswordRequired is an error for an empty password
	ErrPasswordRequired = errors.New("Password is required")
	// ErrPasswordTooShort is an error for a password that is too short
	ErrPasswordTooShort = errors.New("Password should be longer than 8 characters")
	// ErrGenerationNotConfigured is an error for generation operations on a
	// server without a configured generation API key
	ErrGenerationNotConfigured = errors.New("content generation is not configured")
)

// ValidationError is an error for input that fails a write-time invariant
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) error {
	return ValidationError{Message: message}
}

// IsValidationError checks if the given error is a ValidationError
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
