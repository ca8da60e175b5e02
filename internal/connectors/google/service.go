package google

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// NewDriveService creates a read-only Google Drive API service.
func NewDriveService(ctx context.Context, ts oauth2.TokenSource, opts ...option.ClientOption) (*drive.Service, error) {
	opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return svc, nil
}

// NewDriveServiceFromFile creates a Drive service authenticated with a
// service account key file.
func NewDriveServiceFromFile(ctx context.Context, credentialsFile string) (*drive.Service, error) {
	ts, err := NewTokenSourceFromFile(ctx, credentialsFile, drive.DriveReadonlyScope)
	if err != nil {
		return nil, err
	}
	return NewDriveService(ctx, ts)
}
