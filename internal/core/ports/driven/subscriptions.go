package driven

import (
	"context"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// SubscriptionManager is implemented by remote repositories that push change
// notifications to the webhook receiver instead of relying on polling alone.
type SubscriptionManager interface {
	// CreateSubscription registers a new subscription expiring one full
	// lifetime after now.
	CreateSubscription(ctx context.Context, now time.Time) (*domain.Subscription, error)

	// ListSubscriptions returns the subscriptions owned by this application.
	ListSubscriptions(ctx context.Context) ([]domain.Subscription, error)

	// RenewSubscription extends a subscription. Returns domain.ErrNotFound
	// when the remote no longer knows the id.
	RenewSubscription(ctx context.Context, id string, now time.Time) (*domain.Subscription, error)
}
