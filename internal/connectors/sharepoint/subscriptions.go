package sharepoint

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// subscription is the Graph wire form of a change notification subscription.
type subscription struct {
	ID                 string    `json:"id,omitempty"`
	Resource           string    `json:"resource"`
	ChangeType         string    `json:"changeType"`
	ClientState        string    `json:"clientState,omitempty"`
	NotificationURL    string    `json:"notificationUrl"`
	ExpirationDateTime time.Time `json:"expirationDateTime"`
}

type subscriptionPage struct {
	Value    []subscription `json:"value"`
	NextLink string         `json:"@odata.nextLink"`
}

// CreateSubscription registers for change notifications on the drive root.
// Graph validates the notification URL synchronously, so the webhook
// receiver must be reachable before this is called.
func (r *Repository) CreateSubscription(ctx context.Context, now time.Time) (*domain.Subscription, error) {
	if r.config.NotificationURL == "" {
		return nil, fmt.Errorf("%w: sharepoint.notification_url is required", domain.ErrNotConfigured)
	}

	driveID, err := r.DriveID(ctx)
	if err != nil {
		return nil, err
	}

	req := subscription{
		Resource:           "drives/" + driveID + "/root",
		ChangeType:         "updated",
		ClientState:        r.config.ClientState,
		NotificationURL:    r.config.NotificationURL,
		ExpirationDateTime: now.UTC().Add(SubscriptionLifetime),
	}

	var created subscription
	if err := r.client.sendJSON(ctx, http.MethodPost, "/subscriptions", req, &created); err != nil {
		return nil, fmt.Errorf("create subscription: %w", err)
	}
	return created.toDomain(), nil
}

// ListSubscriptions returns the subscriptions owned by the application.
func (r *Repository) ListSubscriptions(ctx context.Context) ([]domain.Subscription, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	var subs []domain.Subscription
	next := "/subscriptions"
	for next != "" {
		var page subscriptionPage
		if err := r.client.getJSON(ctx, next, &page); err != nil {
			return nil, fmt.Errorf("list subscriptions: %w", err)
		}
		for _, s := range page.Value {
			subs = append(subs, *s.toDomain())
		}
		next = page.NextLink
	}
	return subs, nil
}

// RenewSubscription extends a subscription by another full lifetime.
func (r *Repository) RenewSubscription(ctx context.Context, id string, now time.Time) (*domain.Subscription, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	patch := map[string]time.Time{"expirationDateTime": now.UTC().Add(SubscriptionLifetime)}

	var renewed subscription
	if err := r.client.sendJSON(ctx, http.MethodPatch, "/subscriptions/"+url.PathEscape(id), patch, &renewed); err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("%w: subscription %s: %w", domain.ErrNotFound, id, err)
		}
		return nil, fmt.Errorf("renew subscription: %w", err)
	}
	return renewed.toDomain(), nil
}

func (s subscription) toDomain() *domain.Subscription {
	return &domain.Subscription{
		ID:              s.ID,
		Resource:        s.Resource,
		ChangeType:      s.ChangeType,
		NotificationURL: s.NotificationURL,
		ExpiresAt:       s.ExpirationDateTime,
	}
}
