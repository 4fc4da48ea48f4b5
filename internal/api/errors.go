// ABOUTME: Error types for backend responses and the display-message precedence.
// ABOUTME: Structured "detail" bodies win over transport errors, then a fixed fallback.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// fallbackMessage is shown when an error carries no usable description at all.
const fallbackMessage = "Something went wrong. Please try again."

// Error is a structured error reported by the backend. The backend wraps all
// failures as {"detail": "..."} with a non-2xx status.
type Error struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend error (status %d)", e.Status)
}

// decodeError reads a non-2xx response body and returns a *Error. A body that
// is not the expected JSON shape still produces a *Error, just without detail.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Detail = payload.Detail
	}
	return apiErr
}

// ErrorMessage converts any error from this package into a user-facing string.
// Precedence: the backend's structured detail field, then the transport error
// text, then a fixed fallback.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		return fallbackMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}
