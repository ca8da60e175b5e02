// Package mcp provides an MCP (Model Context Protocol) server adapter for sprag.
// It lets AI assistants trigger synchronisation and read indexed chunks.
package mcp

import "errors"

// ErrMissingSyncController is returned when the sync controller is not provided.
var ErrMissingSyncController = errors.New("mcp: sync controller is required")
