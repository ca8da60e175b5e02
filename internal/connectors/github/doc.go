// Package github implements a remote repository backed by one GitHub
// repository branch.
//
// # Listing
//
// A listing is a single recursive tree request against the branch head.
// Every blob that passes the file filters becomes one remote document:
//
//   - ID: the path within the repository
//   - Token: the blob SHA, which changes exactly when the content changes
//   - URL: the blob's web URL on the branch
//
// A truncated tree is reported as a transient failure rather than a partial
// listing, since a partial listing would read as a mass deletion.
//
// # Fetching
//
// Content is fetched by blob SHA, so a fetch always returns the bytes the
// listing described. A blob that disappeared in between surfaces as
// [domain.ErrNotFound].
//
// # Authentication
//
// A personal access token (classic or fine-grained) is sent as a static
// OAuth2 bearer token. Public repositories work without one at the
// unauthenticated rate limit of 60 requests per hour.
//
// # Configuration
//
// Settings keys:
//
//   - github.owner, github.repo: required
//   - github.branch: defaults to the repository's default branch
//   - github.file_patterns: comma-separated globs, e.g. "*.md,docs/*"
//   - github.token: may be supplied as SPRAG_GITHUB_TOKEN
package github
