package driving

import (
	"context"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// SubscriptionService manages remote change-notification subscriptions.
type SubscriptionService interface {
	// Create registers a new subscription pointing at the webhook receiver.
	Create(ctx context.Context) (*domain.Subscription, error)

	// List returns the current subscriptions.
	List(ctx context.Context) ([]domain.Subscription, error)

	// Renew extends one subscription by a full lifetime.
	Renew(ctx context.Context, id string) (*domain.Subscription, error)

	// RenewAll extends every subscription and returns how many were renewed.
	RenewAll(ctx context.Context) (int, error)
}
