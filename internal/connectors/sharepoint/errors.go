package sharepoint

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a Microsoft Graph error response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("graph: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("graph: HTTP %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// graphErrorBody is the envelope Graph wraps errors in.
type graphErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// IsNotFound checks if the error indicates the item no longer exists.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusGone)
}

// IsUnauthorized checks if the error indicates an authentication or
// permission failure.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden)
}
