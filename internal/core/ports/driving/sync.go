package driving

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
)

// SyncController is the single entry point for synchronisation triggers.
// Webhook notifications, the periodic scheduler, the CLI and MCP tools all
// go through it.
type SyncController interface {
	// Trigger starts a pass unless one is running or the cooldown is active.
	// It returns as soon as the decision is made; the pass runs in the background.
	Trigger(ctx context.Context) domain.TriggerResult

	// Wait blocks until no pass is running or ctx is done.
	Wait(ctx context.Context) error

	// Status returns a snapshot of the controller state.
	Status() SyncStatus
}

// SyncStatus represents the current state of the run controller.
type SyncStatus struct {
	// State is the current run state.
	State domain.RunState

	// CooldownUntil is when the cooldown ends (zero unless State is cooldown).
	CooldownUntil time.Time

	// Passes is the number of passes started since process start.
	Passes int

	// Progress is the number of documents processed in the running pass.
	Progress int

	// LastSummary is the summary of the most recent completed pass.
	LastSummary *domain.PassSummary

	// LastError is the pass-level error of the most recent pass, if any.
	LastError string
}

// MarshalJSON renders the status for the webhook and MCP surfaces.
// The cooldown deadline is omitted outside cooldown.
func (s SyncStatus) MarshalJSON() ([]byte, error) {
	type view struct {
		State         domain.RunState     `json:"state"`
		CooldownUntil *time.Time          `json:"cooldown_until,omitempty"`
		Passes        int                 `json:"passes"`
		Progress      int                 `json:"progress"`
		LastSummary   *domain.PassSummary `json:"last_summary,omitempty"`
		LastError     string              `json:"last_error,omitempty"`
	}
	v := view{
		State:       s.State,
		Passes:      s.Passes,
		Progress:    s.Progress,
		LastSummary: s.LastSummary,
		LastError:   s.LastError,
	}
	if !s.CooldownUntil.IsZero() {
		until := s.CooldownUntil.UTC()
		v.CooldownUntil = &until
	}
	return json.Marshal(v)
}
