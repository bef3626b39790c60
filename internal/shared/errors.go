package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Authentication errors
	ErrUnauthenticated = fmt.Errorf("not authenticated")
	ErrLoginFailed     = fmt.Errorf("could not log in")

	// API and service errors
	ErrServerRejected    = fmt.Errorf("server rejected request")
	ErrTransport         = fmt.Errorf("could not reach server")
	ErrDuplicateFavorite = fmt.Errorf("team already in favorites")
	ErrFavoriteNotFound  = fmt.Errorf("favorite not found")
	ErrTeamNotFound      = fmt.Errorf("team not found")

	// Input validation errors
	ErrValidation      = fmt.Errorf("validation failed")
	ErrCancelled       = fmt.Errorf("cancelled")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

// ValidationError holds field-scoped messages produced before a form is submitted.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%v: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Field returns the message for a single field, or "" when the field is valid.
func (e *ValidationError) Field(name string) string {
	if e == nil {
		return ""
	}
	return e.Fields[name]
}

// ServerError is a non-2xx response from the API.
//
// Message is the server's own text when the body carried one, otherwise a generic fallback.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

func (e *ServerError) Is(target error) bool {
	if target == ErrServerRejected {
		return true
	}
	return target == ErrUnauthenticated && e.StatusCode == 401
}

// TransportError means no HTTP response was obtained at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v, please try again: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// AsServerError unwraps err into a [ServerError].
func AsServerError(err error) (*ServerError, bool) {
	var se *ServerError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// AsValidationError unwraps err into a [ValidationError].
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// UserMessage renders err as text suitable for a view's error line.
//
// Server messages are shown verbatim. Transport failures get a generic retryable message.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if se, ok := AsServerError(err); ok && se.Message != "" {
		return se.Message
	}
	switch {
	case errors.Is(err, ErrTransport):
		return "Could not reach the server. Please try again."
	case errors.Is(err, ErrDuplicateFavorite):
		return "Team already in favorites"
	case errors.Is(err, ErrUnauthenticated):
		return "Please log in to continue"
	}
	if ve, ok := AsValidationError(err); ok {
		return ve.Error()
	}
	if fallback != "" {
		return fallback
	}
	return err.Error()
}
