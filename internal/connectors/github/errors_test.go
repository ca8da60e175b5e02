package github

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

func TestRateLimitError_MatchesDomain(t *testing.T) {
	err := fmt.Errorf("get tree: %w", &RateLimitError{ResetAt: time.Unix(0, 0).UTC(), Limit: 5000})

	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.Contains(t, err.Error(), "1970-01-01T00:00:00Z")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("get blob: %w", &APIError{StatusCode: http.StatusNotFound})))
	assert.False(t, IsNotFound(&APIError{StatusCode: http.StatusBadGateway}))
	assert.False(t, IsNotFound(ErrTruncatedTree))
}
