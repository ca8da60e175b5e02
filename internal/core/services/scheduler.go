package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driving"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// historyRetention is the number of results kept per task.
const historyRetention = 100

// DefaultRenewInterval is how often subscriptions are renewed. Graph caps
// drive subscriptions at just under thirty days.
const DefaultRenewInterval = 24 * time.Hour

// Scheduler fires the periodic sync trigger and, when the remote supports
// change notifications, renews subscriptions. Task state and history survive
// restarts through the scheduler store, so a restart does not reset the
// interval.
type Scheduler struct {
	interval   time.Duration
	tick       time.Duration
	store      driven.SchedulerStore
	controller driving.SyncController

	subscriptions driving.SubscriptionService
	renewInterval time.Duration

	mu       sync.Mutex
	running  bool
	inflight map[string]bool
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler. A zero interval disables the periodic task.
func NewScheduler(interval time.Duration, store driven.SchedulerStore, controller driving.SyncController) *Scheduler {
	return &Scheduler{
		interval:   interval,
		tick:       time.Minute,
		store:      store,
		controller: controller,
		inflight:   make(map[string]bool),
	}
}

// WithSubscriptionRenewal enables the renewal task. A zero interval uses
// DefaultRenewInterval.
func (s *Scheduler) WithSubscriptionRenewal(subscriptions driving.SubscriptionService, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultRenewInterval
	}
	s.subscriptions = subscriptions
	s.renewInterval = interval
	return s
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	if err := s.ensureTasks(ctx); err != nil {
		logger.Error("scheduler: failed to initialise tasks: %v", err)
	}

	return s.run(ctx, stopCh)
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// ensureTasks creates or updates the built-in tasks in the store.
func (s *Scheduler) ensureTasks(ctx context.Context) error {
	if err := s.ensureTask(ctx, domain.TaskIDPeriodicSync, "Periodic Sync", s.interval); err != nil {
		return err
	}
	var renew time.Duration
	if s.subscriptions != nil {
		renew = s.renewInterval
	}
	return s.ensureTask(ctx, domain.TaskIDRenewSubscriptions, "Renew Subscriptions", renew)
}

// ensureTask creates or updates one task. A zero interval disables it.
func (s *Scheduler) ensureTask(ctx context.Context, id, name string, interval time.Duration) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}

	enabled := interval > 0
	if task == nil {
		if !enabled {
			return nil
		}
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     name,
			Interval: interval,
			Enabled:  true,
			NextRun:  time.Now().Add(interval),
		}
	} else {
		if enabled && task.Interval != interval {
			task.Interval = interval
			task.NextRun = time.Now().Add(interval)
		}
		task.Enabled = enabled
	}

	return s.store.SaveTask(ctx, task)
}

func (s *Scheduler) run(ctx context.Context, stopCh <-chan struct{}) error {
	s.checkAndRunDueTasks(ctx)

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		case <-stopCh:
			return nil
		case <-ticker.C:
			s.checkAndRunDueTasks(ctx)
		}
	}
}

// checkAndRunDueTasks finds and executes tasks that are due.
func (s *Scheduler) checkAndRunDueTasks(ctx context.Context) {
	tasks, err := s.store.ListTasks(ctx)
	if err != nil {
		logger.Error("scheduler: failed to list tasks: %v", err)
		return
	}

	now := time.Now()
	for i := range tasks {
		task := tasks[i]
		if !task.Enabled || task.NextRun.After(now) {
			continue
		}
		s.runTask(ctx, &task)
	}
}

// runTask executes a single task unless it is already in flight.
func (s *Scheduler) runTask(ctx context.Context, task *domain.ScheduledTask) {
	s.mu.Lock()
	if s.inflight[task.ID] {
		s.mu.Unlock()
		return
	}
	s.inflight[task.ID] = true
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.inflight, task.ID)
			s.mu.Unlock()
			s.wg.Done()
		}()

		result := &domain.TaskResult{
			TaskID:    task.ID,
			StartedAt: time.Now(),
		}

		var err error
		switch task.ID {
		case domain.TaskIDPeriodicSync:
			result.Outcome, err = s.runPeriodicSync(ctx)
		case domain.TaskIDRenewSubscriptions:
			result.Outcome, err = s.runRenewal(ctx)
		default:
			logger.Warn("scheduler: unknown task ID: %s", task.ID)
			return
		}

		result.EndedAt = time.Now()
		if err != nil {
			result.Error = err.Error()
			task.LastError = err.Error()
		} else {
			result.Success = true
			task.LastError = ""
			task.LastSuccess = result.EndedAt
		}

		task.LastRun = result.StartedAt
		task.NextRun = result.EndedAt.Add(task.Interval)

		if saveErr := s.store.SaveTask(ctx, task); saveErr != nil {
			logger.Error("scheduler: failed to save task %s: %v", task.ID, saveErr)
		}
		if recordErr := s.store.RecordResult(ctx, result); recordErr != nil {
			logger.Error("scheduler: failed to record result for %s: %v", task.ID, recordErr)
		}
		if pruneErr := s.store.PruneHistory(ctx, historyRetention); pruneErr != nil {
			logger.Error("scheduler: failed to prune history: %v", pruneErr)
		}
	}()
}

// runPeriodicSync triggers a pass through the controller. When the pass
// starts, it waits for it so the task result reflects the pass outcome.
// A skipped trigger is a success: another trigger source already covered it.
func (s *Scheduler) runPeriodicSync(ctx context.Context) (string, error) {
	if s.controller == nil {
		return "", nil
	}

	outcome := s.controller.Trigger(ctx)
	logger.Info("scheduler: periodic trigger %s", outcome)
	if outcome != domain.TriggerStarted {
		return string(outcome), nil
	}

	if err := s.controller.Wait(ctx); err != nil {
		return string(outcome), err
	}
	if msg := s.controller.Status().LastError; msg != "" {
		return string(outcome), errors.New(msg)
	}
	return string(outcome), nil
}

// runRenewal extends every subscription so notifications keep arriving.
func (s *Scheduler) runRenewal(ctx context.Context) (string, error) {
	if s.subscriptions == nil {
		return "", nil
	}
	renewed, err := s.subscriptions.RenewAll(ctx)
	logger.Info("scheduler: renewed %d subscriptions", renewed)
	return fmt.Sprintf("renewed %d", renewed), err
}
