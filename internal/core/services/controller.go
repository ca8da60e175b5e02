package services

import (
	"context"
	"sync"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

// Ensure RunController implements the interface.
var _ driving.SyncController = (*RunController)(nil)

// Timer is the part of *time.Timer the controller uses.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it.
type AfterFunc func(d time.Duration, f func()) Timer

// ControllerOption configures a RunController.
type ControllerOption func(*RunController)

// WithClock overrides the clock used to measure passes.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *RunController) { c.now = now }
}

// WithAfterFunc overrides the timer used to end the cooldown.
func WithAfterFunc(after AfterFunc) ControllerOption {
	return func(c *RunController) { c.afterFunc = after }
}

// WithPassLock makes every pass also hold lock, so controllers in other
// processes over the same data directory see the pass as running.
func WithPassLock(lock driven.PassLock) ControllerOption {
	return func(c *RunController) { c.lock = lock }
}

// RunController serialises passes. At most one pass runs at a time; after a
// pass ends, triggers are dropped for the pass duration plus a margin.
// Triggers that arrive while running or cooling down are never queued.
type RunController struct {
	runner PassRunner
	margin time.Duration

	now       func() time.Time
	afterFunc AfterFunc
	lock      driven.PassLock

	mu            sync.Mutex
	state         domain.RunState
	closed        bool
	cooldownUntil time.Time
	timer         Timer
	passDone      chan struct{}
	passes        int
	progress      int
	lastSummary   *domain.PassSummary
	lastError     string
	wg            sync.WaitGroup
}

// NewRunController creates a controller around a pass runner.
func NewRunController(runner PassRunner, margin time.Duration, opts ...ControllerOption) *RunController {
	c := &RunController{
		runner: runner,
		margin: margin,
		now:    time.Now,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		state: domain.RunIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Trigger starts a pass if the controller is idle. It never blocks on the pass.
// A closed controller reports skipped_locked.
func (c *RunController) Trigger(ctx context.Context) domain.TriggerResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed || c.state == domain.RunRunning:
		logger.Debug("Trigger skipped: pass in progress")
		return domain.TriggerSkippedLocked
	case c.state == domain.RunCooldown:
		logger.Debug("Trigger skipped: cooldown until %s", c.cooldownUntil.Format(time.RFC3339))
		return domain.TriggerSkippedCooldown
	}

	if c.lock != nil {
		acquired, err := c.lock.TryLock()
		if err != nil {
			logger.Error("Trigger skipped: pass lock: %v", err)
			return domain.TriggerSkippedLocked
		}
		if !acquired {
			logger.Debug("Trigger skipped: pass in progress in another process")
			return domain.TriggerSkippedLocked
		}
	}

	c.state = domain.RunRunning
	c.passes++
	c.progress = 0
	c.passDone = make(chan struct{})
	c.wg.Add(1)

	go c.run(context.WithoutCancel(ctx), c.passDone)

	return domain.TriggerStarted
}

// run executes one pass and arms the cooldown, also after a failed pass.
func (c *RunController) run(ctx context.Context, done chan struct{}) {
	defer c.wg.Done()

	started := c.now()
	logger.Info("Pass %d started", c.passCount())

	summary, err := c.runner.RunPass(ctx, c.setProgress)
	if c.lock != nil {
		if unlockErr := c.lock.Unlock(); unlockErr != nil {
			logger.Error("Releasing pass lock: %v", unlockErr)
		}
	}
	elapsed := c.now().Sub(started)
	cooldown := elapsed + c.margin

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		logger.Error("Pass failed after %s: %v", elapsed.Round(time.Millisecond), err)
		c.lastError = err.Error()
	} else {
		c.lastError = ""
		c.lastSummary = summary
	}

	c.state = domain.RunCooldown
	c.cooldownUntil = c.now().Add(cooldown)
	if !c.closed {
		c.timer = c.afterFunc(cooldown, c.endCooldown)
	}
	close(done)

	logger.Debug("Cooldown armed for %s", cooldown.Round(time.Millisecond))
}

// endCooldown returns the controller to idle.
func (c *RunController) endCooldown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != domain.RunCooldown {
		return
	}
	c.state = domain.RunIdle
	c.cooldownUntil = time.Time{}
	c.timer = nil
	logger.Debug("Cooldown ended")
}

func (c *RunController) setProgress(done, _ int) {
	c.mu.Lock()
	c.progress = done
	c.mu.Unlock()
}

func (c *RunController) passCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passes
}

// Wait blocks until no pass is running or ctx is done.
func (c *RunController) Wait(ctx context.Context) error {
	c.mu.Lock()
	if c.state != domain.RunRunning {
		c.mu.Unlock()
		return nil
	}
	done := c.passDone
	c.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of the controller state.
func (c *RunController) Status() driving.SyncStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := driving.SyncStatus{
		State:     c.state,
		Passes:    c.passes,
		Progress:  c.progress,
		LastError: c.lastError,
	}
	if c.state == domain.RunCooldown {
		status.CooldownUntil = c.cooldownUntil
	}
	if c.lastSummary != nil {
		summary := *c.lastSummary
		status.LastSummary = &summary
	}
	return status
}

// Close rejects further triggers, waits for a running pass and stops the
// cooldown timer.
func (c *RunController) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	return nil
}
