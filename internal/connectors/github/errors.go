package github

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// ErrTruncatedTree means the recursive tree exceeded GitHub's response
// limits. The listing would be partial, so the pass must not use it.
var ErrTruncatedTree = errors.New("github: tree listing truncated")

// RateLimitError is returned when the primary rate limit is exhausted.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limit exceeded, resets at %s", e.ResetAt.Format(time.RFC3339))
}

// Unwrap lets callers match domain.ErrRateLimited.
func (e *RateLimitError) Unwrap() error {
	return domain.ErrRateLimited
}

// APIError is a non-2xx GitHub API response.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("github: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound reports whether the blob or tree is gone, which happens when a
// force-push lands between listing and fetch.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
