package sharepoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 60 * time.Second

// Client is a minimal Microsoft Graph client authenticated with the client
// credentials grant.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
}

// NewClient creates a Graph client. ctx scopes token acquisition and
// should outlive the client.
func NewClient(ctx context.Context, cfg *Config) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       []string{GraphScope},
	}

	httpClient := cc.Client(ctx)
	httpClient.Timeout = DefaultTimeout

	limit := cfg.Rate
	if limit == 0 {
		limit = DefaultRate
	}

	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(cfg.GraphURL, "/"),
		limiter: rate.NewLimiter(limit, 1),
	}
}

// resolve turns a Graph path into an absolute URL. Absolute URLs such as
// @odata.nextLink pass through.
func (c *Client) resolve(target string) string {
	if strings.HasPrefix(target, "https://") || strings.HasPrefix(target, "http://") {
		return target
	}
	return c.baseURL + target
}

// do sends a request and returns the response for 2xx statuses.
// Other statuses are converted to errors and the body is closed.
func (c *Client) do(ctx context.Context, method, target string, body any) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(target), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, responseError(resp)
	}
	return resp, nil
}

// getJSON decodes the response of a GET request into out.
func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	return c.sendJSON(ctx, http.MethodGet, target, nil, out)
}

// sendJSON sends in as the JSON body and decodes the response into out.
func (c *Client) sendJSON(ctx context.Context, method, target string, in, out any) error {
	resp, err := c.do(ctx, method, target, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", target, err)
	}
	return nil
}

// download reads at most limit bytes of a response body.
func (c *Client) download(ctx context.Context, target string, limit int64) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", target, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: content exceeds %d bytes", domain.ErrInvalidInput, limit)
	}
	return data, nil
}

// responseError converts a non-2xx response into an APIError, wrapped in
// domain.ErrRateLimited when Graph is throttling.
func responseError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body graphErrorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if json.Unmarshal(data, &body) == nil && body.Error.Code != "" {
		apiErr.Code = body.Error.Code
		apiErr.Message = body.Error.Message
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusServiceUnavailable {
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			return fmt.Errorf("%w: retry after %ss: %w", domain.ErrRateLimited, retryAfter, apiErr)
		}
		return fmt.Errorf("%w: %w", domain.ErrRateLimited, apiErr)
	}
	return apiErr
}
