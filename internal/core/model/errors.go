// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures a generation run can end with.
type ErrorKind string

const (
	// ConfigurationError: a required credential or client is missing.
	ConfigurationError ErrorKind = "configuration_error"
	// TemplateNotFoundError: no prompt template for the requested name, in any language.
	TemplateNotFoundError ErrorKind = "template_not_found"
	// ValidationError: the caller's input breaks a request invariant.
	ValidationError ErrorKind = "validation_error"
	// UpstreamCallError: the LLM or transcription provider call failed.
	UpstreamCallError ErrorKind = "upstream_call_error"
)

// AppError is the error type returned by the generation core.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error returns the message, followed by the wrapped error when there is one.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError returns an AppError of kind wrapping err, which may be nil.
func NewAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// NewConfigurationError reports a missing credential or client.
func NewConfigurationError(message string) *AppError {
	return NewAppError(ConfigurationError, message, nil)
}

// NewTemplateNotFoundError reports a prompt missing in every language tried.
func NewTemplateNotFoundError(message string) *AppError {
	return NewAppError(TemplateNotFoundError, message, nil)
}

// NewValidationError reports a request the pipeline refuses to run.
func NewValidationError(message string) *AppError {
	return NewAppError(ValidationError, message, nil)
}

// NewUpstreamCallError wraps the failure of a provider call.
func NewUpstreamCallError(message string, err error) *AppError {
	return NewAppError(UpstreamCallError, message, err)
}

// KindOf returns the kind of the first AppError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// IsConfigurationError reports whether err carries a ConfigurationError.
func IsConfigurationError(err error) bool {
	return KindOf(err) == ConfigurationError
}

// IsTemplateNotFoundError reports whether err carries a TemplateNotFoundError.
func IsTemplateNotFoundError(err error) bool {
	return KindOf(err) == TemplateNotFoundError
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	return KindOf(err) == ValidationError
}

// IsUpstreamCallError reports whether err carries an UpstreamCallError.
func IsUpstreamCallError(err error) bool {
	return KindOf(err) == UpstreamCallError
}
