package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscription_Expired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, Subscription{ExpiresAt: now.Add(time.Minute)}.Expired(now))
	assert.True(t, Subscription{ExpiresAt: now}.Expired(now))
	assert.True(t, Subscription{}.Expired(now))
}
