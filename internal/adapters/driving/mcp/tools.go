package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
)

// TriggerSyncInput is the input schema for the trigger_sync tool.
type TriggerSyncInput struct {
	Wait bool `json:"wait,omitempty" jsonschema:"block until the started pass completes"`
}

// TriggerSyncOutput is the output schema for the trigger_sync tool.
type TriggerSyncOutput struct {
	Result string       `json:"result"`
	Status StatusOutput `json:"status"`
}

// SyncStatusInput is the (empty) input schema for the sync_status tool.
type SyncStatusInput struct{}

// StatusOutput is the output schema for the sync_status tool.
type StatusOutput struct {
	State         string              `json:"state"`
	CooldownUntil string              `json:"cooldown_until,omitempty"`
	Passes        int                 `json:"passes"`
	Progress      int                 `json:"progress"`
	LastError     string              `json:"last_error,omitempty"`
	LastSummary   *domain.PassSummary `json:"last_summary,omitempty"`
}

// DocumentChunksInput is the input schema for the document_chunks tool.
type DocumentChunksInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document identity as listed by the source"`
}

// DocumentChunksOutput is the output schema for the document_chunks tool.
type DocumentChunksOutput struct {
	DocumentID string        `json:"document_id"`
	Chunks     []ChunkOutput `json:"chunks"`
	Count      int           `json:"count"`
}

// ChunkOutput represents a single chunk.
type ChunkOutput struct {
	ID        string `json:"id"`
	Position  int    `json:"position"`
	Content   string `json:"content"`
	SourceURL string `json:"source_url,omitempty"`
	Embedded  bool   `json:"embedded"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "trigger_sync",
		Description: "Start a synchronisation pass unless one is running or the cooldown is active",
	}, s.handleTriggerSync)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_status",
		Description: "Report the run state and the summary of the last pass",
	}, s.handleSyncStatus)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "document_chunks",
		Description: "Return the indexed chunks of one document in order",
	}, s.handleDocumentChunks)
}

// handleTriggerSync handles the trigger_sync tool invocation.
func (s *Server) handleTriggerSync(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TriggerSyncInput,
) (*mcp.CallToolResult, TriggerSyncOutput, error) {
	result := s.ports.Sync.Trigger(ctx)

	if input.Wait && result == domain.TriggerStarted {
		if err := s.ports.Sync.Wait(ctx); err != nil {
			return nil, TriggerSyncOutput{}, err
		}
	}

	return nil, TriggerSyncOutput{
		Result: string(result),
		Status: statusOutput(s.ports.Sync.Status()),
	}, nil
}

// handleSyncStatus handles the sync_status tool invocation.
func (s *Server) handleSyncStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ SyncStatusInput,
) (*mcp.CallToolResult, StatusOutput, error) {
	return nil, statusOutput(s.ports.Sync.Status()), nil
}

// handleDocumentChunks handles the document_chunks tool invocation.
func (s *Server) handleDocumentChunks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentChunksInput,
) (*mcp.CallToolResult, DocumentChunksOutput, error) {
	if s.ports.Index == nil {
		return nil, DocumentChunksOutput{}, fmt.Errorf("%w: index service", domain.ErrNotConfigured)
	}

	chunks, err := s.ports.Index.DocumentChunks(ctx, input.DocumentID)
	if err != nil {
		return nil, DocumentChunksOutput{}, err
	}

	output := DocumentChunksOutput{
		DocumentID: input.DocumentID,
		Chunks:     make([]ChunkOutput, len(chunks)),
		Count:      len(chunks),
	}
	for i := range chunks {
		output.Chunks[i] = ChunkOutput{
			ID:        chunks[i].ID,
			Position:  chunks[i].Position,
			Content:   chunks[i].Content,
			SourceURL: chunks[i].SourceURL,
			Embedded:  len(chunks[i].Embedding) > 0,
		}
	}

	return nil, output, nil
}

func statusOutput(status driving.SyncStatus) StatusOutput {
	out := StatusOutput{
		State:       status.State.String(),
		Passes:      status.Passes,
		Progress:    status.Progress,
		LastError:   status.LastError,
		LastSummary: status.LastSummary,
	}
	if !status.CooldownUntil.IsZero() {
		out.CooldownUntil = status.CooldownUntil.UTC().Format(time.RFC3339)
	}
	return out
}
