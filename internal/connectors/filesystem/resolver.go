package filesystem

import (
	"net/url"
	"path/filepath"
)

// fileURL converts an absolute path to a file:// URL.
func fileURL(abs string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
