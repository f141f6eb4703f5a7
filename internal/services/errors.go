package services

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrBadRequest    = errors.New("bad request")
	ErrInternalData  = errors.New("internal data error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTransient     = errors.New("transient failure")
)

// Error is a failure whose message is meant to be shown to the caller as-is.
// The marker classifies it for HTTPStatus and errors.Is.
type Error struct {
	Marker  error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return e.Marker != nil && target == e.Marker
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorKind reports a short classification string for logging.
func (e *Error) ErrorKind() string {
	switch e.Marker {
	case ErrBadRequest:
		return "bad_request"
	case ErrInternalData:
		return "internal_data"
	case ErrConfiguration:
		return "configuration"
	case ErrNotFound:
		return "not_found"
	default:
		return "transient"
	}
}

// BadRequest reports malformed or unresolvable input.
func BadRequest(message string) error {
	return &Error{Marker: ErrBadRequest, Message: message}
}

// InternalData reports data that exists but cannot be used to build a notification.
func InternalData(message string, err error) error {
	return &Error{Marker: ErrInternalData, Message: message, Err: err}
}

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later status classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// HTTPStatus maps an operation error to the response code the API should
// return. Only caller mistakes are 400; everything else is a server fault.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-facing text of err. Wrapped errors that do
// not carry an *Error fall back to a generic description.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var pub *Error
	if errors.As(err, &pub) {
		return pub.Error()
	}
	return "internal error"
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
