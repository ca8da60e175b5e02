package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

// Ensure SubscriptionService implements the interface.
var _ driving.SubscriptionService = (*SubscriptionService)(nil)

// SubscriptionService manages change-notification subscriptions on a
// remote that supports them.
type SubscriptionService struct {
	manager driven.SubscriptionManager
	now     func() time.Time
}

// NewSubscriptionService creates a subscription service.
func NewSubscriptionService(manager driven.SubscriptionManager) *SubscriptionService {
	return &SubscriptionService{manager: manager, now: time.Now}
}

// Create registers a new subscription.
func (s *SubscriptionService) Create(ctx context.Context) (*domain.Subscription, error) {
	return s.manager.CreateSubscription(ctx, s.now())
}

// List returns the current subscriptions.
func (s *SubscriptionService) List(ctx context.Context) ([]domain.Subscription, error) {
	return s.manager.ListSubscriptions(ctx)
}

// Renew extends one subscription.
func (s *SubscriptionService) Renew(ctx context.Context, id string) (*domain.Subscription, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: subscription id is required", domain.ErrInvalidInput)
	}
	return s.manager.RenewSubscription(ctx, id, s.now())
}

// RenewAll extends every subscription. Subscriptions the remote has already
// dropped are skipped; other failures are joined and returned.
func (s *SubscriptionService) RenewAll(ctx context.Context) (int, error) {
	subs, err := s.manager.ListSubscriptions(ctx)
	if err != nil {
		return 0, err
	}

	renewed := 0
	var errs []error
	for _, sub := range subs {
		if _, err := s.manager.RenewSubscription(ctx, sub.ID, s.now()); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("subscription %s no longer exists", sub.ID)
				continue
			}
			errs = append(errs, fmt.Errorf("renew %s: %w", sub.ID, err))
			continue
		}
		renewed++
	}
	return renewed, errors.Join(errs...)
}
