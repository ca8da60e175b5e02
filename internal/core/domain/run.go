package domain

import "time"

// RunState is the run controller's coordination state.
type RunState int

const (
	// RunIdle means no pass is running and no cooldown is armed.
	RunIdle RunState = iota

	// RunRunning means a pass is in progress.
	RunRunning

	// RunCooldown means a pass just completed and triggers are suppressed.
	RunCooldown
)

// String returns the lower-case state name.
func (s RunState) String() string {
	switch s {
	case RunIdle:
		return "idle"
	case RunRunning:
		return "running"
	case RunCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state as its name.
func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// TriggerResult is the outcome of a trigger request.
type TriggerResult string

const (
	// TriggerStarted means a new pass was started.
	TriggerStarted TriggerResult = "started"

	// TriggerSkippedLocked means a pass was already running.
	TriggerSkippedLocked TriggerResult = "skipped_locked"

	// TriggerSkippedCooldown means the post-pass cooldown window was active.
	TriggerSkippedCooldown TriggerResult = "skipped_cooldown"
)

// Outcome classifies how one identity ended a pass.
type Outcome string

const (
	// OutcomeIndexed means fresh chunks replaced the previous set.
	OutcomeIndexed Outcome = "indexed"

	// OutcomeEmpty means the pipeline produced no chunks (degraded, not an error).
	OutcomeEmpty Outcome = "empty"

	// OutcomeUnsupported means no normaliser handles the content type.
	OutcomeUnsupported Outcome = "unsupported"

	// OutcomeRemoved means the identity's chunks were deleted.
	OutcomeRemoved Outcome = "removed"

	// OutcomeVanished means the document disappeared between listing and fetch.
	OutcomeVanished Outcome = "vanished"

	// OutcomeFailed means the identity failed and its watermark was kept.
	OutcomeFailed Outcome = "failed"
)

// Advances reports whether the outcome lets the watermark move to the listed token.
func (o Outcome) Advances() bool {
	return o == OutcomeIndexed || o == OutcomeEmpty || o == OutcomeUnsupported
}

// IdentityFailure records a per-identity failure within a pass.
type IdentityFailure struct {
	DocumentID string `json:"document_id"`
	Reason     string `json:"reason"`
}

// PassSummary reports the result of one synchronisation pass.
type PassSummary struct {
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`

	// Diff bucket sizes.
	New       int `json:"new"`
	Changed   int `json:"changed"`
	Deleted   int `json:"deleted"`
	Unchanged int `json:"unchanged"`

	// Per-identity outcomes.
	Indexed     int `json:"indexed"`
	Empty       int `json:"empty"`
	Unsupported int `json:"unsupported"`
	Vanished    int `json:"vanished"`
	Removed     int `json:"removed"`
	Failed      int `json:"failed"`

	ChunksWritten int `json:"chunks_written"`
	ChunksRemoved int `json:"chunks_removed"`

	// Failures lists every identity that failed, sorted by identity.
	Failures []IdentityFailure `json:"failures,omitempty"`
}

// Record counts one identity outcome.
func (p *PassSummary) Record(outcome Outcome) {
	switch outcome {
	case OutcomeIndexed:
		p.Indexed++
	case OutcomeEmpty:
		p.Empty++
	case OutcomeUnsupported:
		p.Unsupported++
	case OutcomeVanished:
		p.Vanished++
	case OutcomeRemoved:
		p.Removed++
	case OutcomeFailed:
		p.Failed++
	}
}
