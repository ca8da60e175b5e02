package github

import (
	"fmt"
	"strings"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// DefaultMaxFileSize skips blobs larger than 1MB.
const DefaultMaxFileSize = 1024 * 1024

// Config holds the parsed configuration for a GitHub repository.
type Config struct {
	Owner string
	Repo  string

	// Branch to index. Empty resolves to the default branch.
	Branch string

	// FilePatterns are glob patterns for file filtering.
	// Default: all files
	FilePatterns []string

	// MaxFileSize skips larger blobs.
	MaxFileSize int64
}

// ParseConfig builds a Config from GitHub settings.
func ParseConfig(s domain.GitHubSettings) (*Config, error) {
	if s.Owner == "" || s.Repo == "" {
		return nil, fmt.Errorf("%w: github.owner and github.repo are required", domain.ErrNotConfigured)
	}

	return &Config{
		Owner:        s.Owner,
		Repo:         s.Repo,
		Branch:       s.Branch,
		FilePatterns: parsePatterns(s.FilePatterns),
		MaxFileSize:  DefaultMaxFileSize,
	}, nil
}

// parsePatterns parses a comma-separated glob patterns string.
func parsePatterns(s string) []string {
	parts := strings.Split(s, ",")
	patterns := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			patterns = append(patterns, part)
		}
	}
	return patterns
}
