package sharepoint

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

const (
	// DefaultGraphURL is the Microsoft Graph v1.0 API root.
	DefaultGraphURL = "https://graph.microsoft.com/v1.0"

	// DefaultLoginURL is the Microsoft identity platform root.
	DefaultLoginURL = "https://login.microsoftonline.com"

	// GraphScope requests the application's statically granted permissions.
	GraphScope = "https://graph.microsoft.com/.default"

	// SubscriptionLifetime is just under the 30 day maximum Graph allows
	// for drive item subscriptions.
	SubscriptionLifetime = 42300 * time.Minute

	// DefaultRate bounds Graph requests per second.
	DefaultRate = 10

	// MaxDownloadSize caps a single file download.
	MaxDownloadSize = 100 * 1024 * 1024
)

// Config holds the parsed SharePoint configuration.
type Config struct {
	TenantID     string
	ClientID     string
	ClientSecret string

	// SiteURL is the site's web address, e.g. https://contoso.sharepoint.com/sites/Team.
	SiteURL string

	// NotificationURL receives Graph change notifications.
	NotificationURL string

	// ClientState is echoed in every notification of our subscriptions.
	ClientState string

	// GraphURL and TokenURL are overridable for sovereign clouds and tests.
	GraphURL string
	TokenURL string

	Rate rate.Limit
}

// ParseConfig builds a Config from settings. Credentials and the site URL
// are required.
func ParseConfig(s domain.SharePointSettings, clientState string) (*Config, error) {
	var missing []string
	if s.TenantID == "" {
		missing = append(missing, "sharepoint.tenant_id")
	}
	if s.ClientID == "" {
		missing = append(missing, "sharepoint.client_id")
	}
	if s.ClientSecret == "" {
		missing = append(missing, "sharepoint.client_secret")
	}
	if s.SiteURL == "" {
		missing = append(missing, "sharepoint.site_url")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrNotConfigured, strings.Join(missing, ", "))
	}

	return &Config{
		TenantID:        s.TenantID,
		ClientID:        s.ClientID,
		ClientSecret:    s.ClientSecret,
		SiteURL:         s.SiteURL,
		NotificationURL: s.NotificationURL,
		ClientState:     clientState,
		GraphURL:        DefaultGraphURL,
		TokenURL:        fmt.Sprintf("%s/%s/oauth2/v2.0/token", DefaultLoginURL, url.PathEscape(s.TenantID)),
		Rate:            DefaultRate,
	}, nil
}

// sitePath returns the Graph path addressing the configured site.
// A full URL resolves by hostname and server-relative path; a bare site
// name resolves under the tenant's root site.
func (c *Config) sitePath() (string, error) {
	raw := strings.TrimRight(c.SiteURL, "/")
	if !strings.Contains(raw, "://") {
		if raw == "" {
			return "", fmt.Errorf("%w: empty site url", domain.ErrInvalidInput)
		}
		return "/sites/root:/sites/" + url.PathEscape(raw), nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: site url %q", domain.ErrInvalidInput, c.SiteURL)
	}
	if u.Path == "" {
		return "/sites/" + u.Host, nil
	}
	return "/sites/" + u.Host + ":" + u.EscapedPath(), nil
}
