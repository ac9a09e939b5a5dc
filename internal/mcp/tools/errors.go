package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/usestring/wpbridge-mcp/internal/batch"
	"github.com/usestring/wpbridge-mcp/pkg/client"
	"github.com/usestring/wpbridge-mcp/pkg/template"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeWordPressError = "WORDPRESS_ERROR"
	ErrCodeInvalidInput   = "INVALID_INPUT"
	ErrCodeTimeout        = "TIMEOUT"
	ErrCodeEmptyInput     = "EMPTY_INPUT"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapWordPressError converts a client.APIError or other error to a coded error.
// Errors that are already coded pass through unchanged.
func WrapWordPressError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	if errors.As(err, &coded) {
		return coded
	}

	var apiErr *client.APIError
	var netErr net.Error
	switch {
	case errors.As(err, &apiErr):
		code := ErrCodeWordPressError
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			code = ErrCodeUnauthorized
		case http.StatusNotFound:
			code = ErrCodeNotFound
		}
		coded = &CodedError{Code: code, Message: apiErr.Message, Cause: err}
	case errors.Is(err, batch.ErrUnknownContentType):
		coded = &CodedError{Code: ErrCodeNotFound, Message: "content type not found", Cause: err}
	case errors.Is(err, template.ErrEmptyInput):
		coded = &CodedError{Code: ErrCodeEmptyInput, Message: "no records returned", Cause: err}
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		coded = &CodedError{Code: ErrCodeTimeout, Message: "request timed out", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeWordPressError, Message: err.Error(), Cause: err}
	}

	slog.Warn("wordpress request failed",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// ErrEmptyBatch reports a content type that returned no records.
func ErrEmptyBatch(contentType string) error {
	return &CodedError{
		Code:    ErrCodeEmptyInput,
		Message: fmt.Sprintf("no %s records matched; nothing to sample", contentType),
		Cause:   template.ErrEmptyInput,
	}
}
