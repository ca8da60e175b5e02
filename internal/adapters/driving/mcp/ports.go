package mcp

import (
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Sync triggers passes and reports controller state.
	Sync driving.SyncController

	// Index reads the derived store and watermark.
	Index driving.IndexService

	// Version is reported to clients; empty means DefaultVersion.
	Version string
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Sync == nil {
		return ErrMissingSyncController
	}
	// Index is optional; chunk tools and resources report not found without it.
	return nil
}
