package google

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
)

// NewTokenSource creates a token source from a service account JSON key.
func NewTokenSource(ctx context.Context, credentialsJSON []byte, scopes ...string) (oauth2.TokenSource, error) {
	cfg, err := googleoauth.JWTConfigFromJSON(credentialsJSON, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	return cfg.TokenSource(ctx), nil
}

// NewTokenSourceFromFile reads a service account JSON key file.
func NewTokenSourceFromFile(ctx context.Context, path string, scopes ...string) (oauth2.TokenSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return NewTokenSource(ctx, data, scopes...)
}
