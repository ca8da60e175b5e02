package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for sprag resources.
	uriScheme = "sprag://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "watermark",
		Name:        "watermark",
		Description: "Tracked document identities and their last processed change tokens",
		MIMEType:    "application/json",
	}, s.handleWatermarkResource)

	// Template for document content.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document-content",
		Description: "Indexed text of a document, its chunks joined in order",
		MIMEType:    "text/plain",
	}, s.handleDocumentContentResource)
}

// handleWatermarkResource returns the persisted watermark.
func (s *Server) handleWatermarkResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	watermark, err := s.ports.Index.Watermark(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading watermark: %w", err)
	}

	data, err := json.MarshalIndent(watermark, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling watermark: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleDocumentContentResource returns the indexed content of a document.
func (s *Server) handleDocumentContentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract documentId from URI: sprag://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	chunks, err := s.ports.Index.DocumentChunks(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document chunks: %w", err)
	}

	parts := make([]string, len(chunks))
	for i := range chunks {
		parts[i] = chunks[i].Content
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     strings.Join(parts, "\n\n"),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like sprag://documents/{documentId}.
// Identities containing slashes arrive percent-encoded.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return ""
	}
	return id
}
