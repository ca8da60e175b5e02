package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func listIDs(t *testing.T, repo *Repository) map[string]domain.RemoteDocument {
	t.Helper()
	docs, err := repo.ListDocuments(context.Background())
	require.NoError(t, err)
	out := make(map[string]domain.RemoteDocument, len(docs))
	for _, d := range docs {
		out[d.ID] = d
	}
	return out
}

func TestRepository_ListDocuments(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "readme.md", "# Readme")
	writeFile(t, root, "policies/travel.txt", "Travel policy")
	writeFile(t, root, ".hidden.txt", "secret")
	writeFile(t, root, ".git/config", "[core]")
	writeFile(t, root, "drafts/.swap", "x")

	repo := New(root)
	docs := listIDs(t, repo)

	require.Len(t, docs, 2)
	require.Contains(t, docs, "readme.md")
	require.Contains(t, docs, "policies/travel.txt")

	travel := docs["policies/travel.txt"]
	assert.Equal(t, "travel.txt", travel.Name)
	assert.Equal(t, "text/plain", travel.MIMEType)
	assert.Equal(t, int64(len("Travel policy")), travel.Size)
	assert.Equal(t, fileURL(filepath.Join(root, "policies", "travel.txt")), travel.URL)
	assert.NotEmpty(t, travel.Token)
}

func TestRepository_ListDocuments_TokenTracksChanges(t *testing.T) {
	root := t.TempDir()
	p := writeFile(t, root, "a.txt", "one")

	repo := New(root)
	before := listIDs(t, repo)["a.txt"].Token
	assert.Equal(t, before, listIDs(t, repo)["a.txt"].Token, "unchanged file keeps its token")

	require.NoError(t, os.WriteFile(p, []byte("one two"), 0o644))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(p, later, later))

	assert.NotEqual(t, before, listIDs(t, repo)["a.txt"].Token)
}

func TestRepository_ListDocuments_MissingRoot(t *testing.T) {
	repo := New(filepath.Join(t.TempDir(), "does-not-exist"))

	_, err := repo.ListDocuments(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransientFetch)
	assert.Contains(t, err.Error(), "root path error")
}

func TestRepository_ListDocuments_RootIsFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "file.txt", "x")

	_, err := New(p).ListDocuments(context.Background())
	assert.ErrorIs(t, err, domain.ErrTransientFetch)
}

func TestRepository_FetchContent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docs/guide.md", "# Guide")
	repo := New(root)

	raw, err := repo.FetchContent(context.Background(), domain.RemoteDocument{ID: "docs/guide.md"})
	require.NoError(t, err)
	assert.Equal(t, "docs/guide.md", raw.DocumentID)
	assert.Equal(t, "# Guide", string(raw.Content))
	assert.Equal(t, "guide.md", raw.Name)
	assert.Equal(t, "text/markdown", raw.MIMEType)
	assert.Equal(t, "md", raw.Metadata["extension"])
}

func TestRepository_FetchContent_Vanished(t *testing.T) {
	repo := New(t.TempDir())

	_, err := repo.FetchContent(context.Background(), domain.RemoteDocument{ID: "gone.txt"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_FetchContent_EscapingPath(t *testing.T) {
	repo := New(t.TempDir())

	for _, id := range []string{"../etc/passwd", "/etc/passwd", ""} {
		_, err := repo.FetchContent(context.Background(), domain.RemoteDocument{ID: id})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, id)
	}
}

func TestRepository_Closed(t *testing.T) {
	repo := New(t.TempDir())
	require.NoError(t, repo.Close())

	_, err := repo.ListDocuments(context.Background())
	assert.Error(t, err)
	_, err = repo.FetchContent(context.Background(), domain.RemoteDocument{ID: "a.txt"})
	assert.Error(t, err)
	assert.Error(t, repo.Watch(context.Background(), func() {}))
}

func TestRepository_Type(t *testing.T) {
	assert.Equal(t, domain.SourceFilesystem, New(".").Type())
}
