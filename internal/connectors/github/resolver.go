package github

import (
	"net/url"
	"strings"
)

// blobWebURL returns the github.com page of a file on a branch.
func blobWebURL(owner, repo, branch, path string) string {
	return "https://github.com/" + url.PathEscape(owner) + "/" + url.PathEscape(repo) +
		"/blob/" + escapeSegments(branch) + "/" + escapeSegments(path)
}

// escapeSegments escapes each slash-separated segment of p.
func escapeSegments(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
