package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
)

func TestErrorClassification(t *testing.T) {
	notFound := fmt.Errorf("get file: %w", &googleapi.Error{Code: http.StatusNotFound})
	throttled := &googleapi.Error{Code: http.StatusTooManyRequests}
	userLimit := &googleapi.Error{
		Code:   http.StatusForbidden,
		Errors: []googleapi.ErrorItem{{Reason: "userRateLimitExceeded"}},
	}
	forbidden := &googleapi.Error{Code: http.StatusForbidden}

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(throttled))
	assert.True(t, IsRateLimited(throttled))
	assert.True(t, IsRateLimited(userLimit))
	assert.False(t, IsRateLimited(forbidden))
	assert.True(t, IsForbidden(forbidden))
	assert.True(t, IsUnauthorized(&googleapi.Error{Code: http.StatusUnauthorized}))
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestRateLimiter_Backoff(t *testing.T) {
	r := NewRateLimiter(rate.Inf, 1)
	require.NoError(t, r.Wait(context.Background()))

	r.RecordRateLimitError(time.Hour)
	assert.WithinDuration(t, time.Now().Add(time.Hour), r.BackoffUntil(), time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_DefaultBackoff(t *testing.T) {
	r := NewDriveRateLimiter()
	r.RecordRateLimitError(0)
	assert.WithinDuration(t, time.Now().Add(DefaultBackoff), r.BackoffUntil(), time.Second)
}

func TestNewTokenSource_InvalidKey(t *testing.T) {
	_, err := NewTokenSource(context.Background(), []byte("{not json"))
	assert.Error(t, err)

	_, err = NewTokenSourceFromFile(context.Background(), "/nonexistent/key.json")
	assert.Error(t, err)
}
