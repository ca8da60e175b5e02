package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

func TestNormalise_TitleAndContent(t *testing.T) {
	raw := &domain.RawDocument{
		DocumentID: "docs/runbook.md",
		Name:       "runbook.md",
		MIMEType:   "text/markdown",
		Content: []byte("# On-call Runbook\n\n" +
			"See [the dashboard](https://grafana/x) for **current** status.\n\n" +
			"- restart the `sync` worker\n" +
			"1. check logs\n\n" +
			"```bash\nsprag status\n```\n\n" +
			"| a | b |\n|---|---|\n| 1 | 2 |\n"),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "docs/runbook.md", doc.ID)
	assert.Equal(t, "On-call Runbook", doc.Title)
	assert.Contains(t, doc.Content, "See the dashboard for current status.")
	assert.Contains(t, doc.Content, "restart the sync worker")
	assert.Contains(t, doc.Content, "check logs")
	assert.Contains(t, doc.Content, "sprag status")
	assert.NotContains(t, doc.Content, "```")
	assert.NotContains(t, doc.Content, "|---|")
	assert.Equal(t, "markdown", doc.Metadata["format"])
}

func TestNormalise_TitleFallsBackToName(t *testing.T) {
	doc, err := New().Normalise(context.Background(), &domain.RawDocument{
		Name:    "release_notes.md",
		Content: []byte("## Only a subheading"),
	})
	require.NoError(t, err)
	assert.Equal(t, "release notes", doc.Title)
	assert.Equal(t, "Only a subheading", doc.Content)
}

func TestNormalise_Nil(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Contains(t, New().SupportedMIMETypes(), "text/markdown")
	assert.Greater(t, New().Priority(), 5)
}
