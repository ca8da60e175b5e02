package html

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

func TestNormalise_StripsMarkup(t *testing.T) {
	raw := &domain.RawDocument{
		DocumentID: "01PAGE",
		Name:       "Home.aspx",
		MIMEType:   "text/html",
		Content: []byte(`<html><head><title>Team &amp; Site</title><style>p{}</style></head>
<body><script>alert(1)</script><h1>Welcome</h1><p>First   paragraph.</p>
<!-- hidden --><div>Second<br/>line</div></body></html>`),
	}

	doc, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "01PAGE", doc.ID)
	assert.Equal(t, "Team & Site", doc.Title)
	assert.Equal(t, "Welcome\nFirst paragraph.\nSecond\nline", doc.Content)
	assert.Equal(t, "html", doc.Metadata["format"])
}

func TestNormalise_TitleFallbacks(t *testing.T) {
	doc, err := New().Normalise(context.Background(), &domain.RawDocument{
		Content: []byte(`<body><h1>Policy <em>v2</em></h1></body>`),
	})
	require.NoError(t, err)
	assert.Equal(t, "Policy v2", doc.Title)

	doc, err = New().Normalise(context.Background(), &domain.RawDocument{
		Name:    "travel-policy.html",
		Content: []byte(`<p>text</p>`),
	})
	require.NoError(t, err)
	assert.Equal(t, "travel policy", doc.Title)
}

func TestNormalise_Nil(t *testing.T) {
	_, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSupportedMIMETypes(t *testing.T) {
	assert.Contains(t, New().SupportedMIMETypes(), "text/html")
	assert.Equal(t, 50, New().Priority())
}
