package domain

import "time"

// Subscription is a change-notification registration held by the remote.
// The remote calls the webhook receiver whenever the subscribed resource changes.
type Subscription struct {
	ID              string
	Resource        string
	ChangeType      string
	NotificationURL string
	ExpiresAt       time.Time
}

// Expired reports whether the subscription has lapsed at now.
func (s Subscription) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
