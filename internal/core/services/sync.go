package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

// ProgressFunc is called after every identity of a pass is settled.
type ProgressFunc func(done, total int)

// PassRunner runs one synchronisation pass.
type PassRunner interface {
	RunPass(ctx context.Context, progress ProgressFunc) (*domain.PassSummary, error)
}

// Ensure Syncer implements the interface.
var _ PassRunner = (*Syncer)(nil)

// Syncer runs synchronisation passes: list, diff, process the pending
// documents on a bounded worker pool, reconcile, then commit the watermark.
type Syncer struct {
	repo       driven.RemoteRepository
	watermarks driven.WatermarkStore
	pipeline   driven.ContentPipeline
	reconciler *Reconciler

	workers    int
	docTimeout time.Duration
	now        func() time.Time
}

// NewSyncer creates a pass runner.
func NewSyncer(
	repo driven.RemoteRepository,
	watermarks driven.WatermarkStore,
	pipeline driven.ContentPipeline,
	chunks driven.ChunkStore,
	settings domain.SyncSettings,
) *Syncer {
	defaults := domain.DefaultSettings().Sync
	if settings.Workers <= 0 {
		settings.Workers = defaults.Workers
	}
	if settings.DocumentTimeout <= 0 {
		settings.DocumentTimeout = defaults.DocumentTimeout
	}

	return &Syncer{
		repo:       repo,
		watermarks: watermarks,
		pipeline:   pipeline,
		reconciler: NewReconciler(chunks),
		workers:    settings.Workers,
		docTimeout: settings.DocumentTimeout,
		now:        time.Now,
	}
}

// identityResult is the settled state of one identity within a pass.
type identityResult struct {
	outcome  domain.Outcome
	inserted int
	removed  int
	reason   string
}

// RunPass runs one pass. A listing failure, a non-timeout fetch failure or a
// watermark failure aborts the pass and leaves the watermark untouched.
// Every other failure is confined to its identity and reported in the summary.
func (s *Syncer) RunPass(ctx context.Context, progress ProgressFunc) (*domain.PassSummary, error) {
	started := s.now()

	listing, err := s.repo.ListDocuments(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrTransientFetch) {
			err = fmt.Errorf("%w: list documents: %w", domain.ErrTransientFetch, err)
		}
		return nil, err
	}

	prior, err := s.watermarks.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: read watermark: %w", domain.ErrWatermarkUnavailable, err)
	}

	diff := domain.ComputeDiff(listing, prior)
	listed := make(map[string]domain.RemoteDocument, len(listing))
	for _, doc := range listing {
		listed[doc.ID] = doc
	}

	logger.Info("Pass: %d listed, %d new, %d changed, %d deleted, %d unchanged",
		len(listed), len(diff.New), len(diff.Changed), len(diff.Deleted), len(diff.Unchanged))

	var (
		mu      sync.Mutex
		results = make(map[string]identityResult, len(diff.Pending())+len(diff.Deleted))
		done    atomic.Int64
		total   = len(diff.Pending()) + len(diff.Deleted)
	)
	settle := func(id string, r identityResult) {
		mu.Lock()
		results[id] = r
		mu.Unlock()
		if progress != nil {
			progress(int(done.Add(1)), total)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, id := range diff.Pending() {
		doc := listed[id]
		g.Go(func() error {
			r, err := s.processDocument(gctx, doc)
			if err != nil {
				return err
			}
			settle(doc.ID, r)
			return nil
		})
	}
	for _, id := range diff.Deleted {
		g.Go(func() error {
			settle(id, s.removeDocument(gctx, id))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Pass aborted: %v", err)
		return nil, err
	}

	next, summary := s.settleWatermark(diff, listed, prior, results)

	if err := s.watermarks.SetAll(ctx, next); err != nil {
		return nil, fmt.Errorf("%w: commit watermark: %w", domain.ErrWatermarkUnavailable, err)
	}

	summary.StartedAt = started
	summary.Duration = s.now().Sub(started)

	logger.Info("Pass complete in %s: %d indexed, %d empty, %d unsupported, %d removed, %d vanished, %d failed",
		summary.Duration.Round(time.Millisecond), summary.Indexed, summary.Empty, summary.Unsupported,
		summary.Removed, summary.Vanished, summary.Failed)
	for _, f := range summary.Failures {
		logger.Warn("Document %s failed: %s", f.DocumentID, f.Reason)
	}

	return summary, nil
}

// settleWatermark computes the next watermark from the per-identity results.
func (s *Syncer) settleWatermark(
	diff domain.Diff,
	listed map[string]domain.RemoteDocument,
	prior domain.Watermark,
	results map[string]identityResult,
) (domain.Watermark, *domain.PassSummary) {
	summary := &domain.PassSummary{
		New:       len(diff.New),
		Changed:   len(diff.Changed),
		Deleted:   len(diff.Deleted),
		Unchanged: len(diff.Unchanged),
	}

	next := make(domain.Watermark, len(listed))
	for _, id := range diff.Unchanged {
		next[id] = listed[id].Token
	}

	record := func(id string, r identityResult) {
		summary.Record(r.outcome)
		summary.ChunksWritten += r.inserted
		summary.ChunksRemoved += r.removed
		if r.outcome == domain.OutcomeFailed {
			summary.Failures = append(summary.Failures, domain.IdentityFailure{DocumentID: id, Reason: r.reason})
		}
	}

	for _, id := range diff.Pending() {
		r := results[id]
		record(id, r)
		switch {
		case r.outcome.Advances():
			next[id] = listed[id].Token
		case r.outcome == domain.OutcomeFailed:
			// Changed documents keep their prior token; new ones stay absent.
			if token, ok := prior[id]; ok {
				next[id] = token
			}
		}
	}

	for _, id := range diff.Deleted {
		r := results[id]
		record(id, r)
		if r.outcome == domain.OutcomeFailed {
			next[id] = prior[id]
		}
	}

	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].DocumentID < summary.Failures[j].DocumentID
	})
	return next, summary
}

// processDocument fetches and indexes one new or changed document.
// A non-nil error aborts the pass; everything else is reported as a result.
func (s *Syncer) processDocument(ctx context.Context, doc domain.RemoteDocument) (identityResult, error) {
	dctx, cancel := context.WithTimeout(ctx, s.docTimeout)
	defer cancel()

	raw, err := s.repo.FetchContent(dctx, doc)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			removed, rerr := s.reconciler.Remove(ctx, doc.ID)
			if rerr != nil {
				return failed(rerr), nil
			}
			logger.Debug("Document %s vanished after listing", doc.ID)
			return identityResult{outcome: domain.OutcomeVanished, removed: removed}, nil
		case ctx.Err() == nil && errors.Is(dctx.Err(), context.DeadlineExceeded):
			return failed(fmt.Errorf("%w: fetch %s: timed out after %s", domain.ErrPipelineFailure, doc.ID, s.docTimeout)), nil
		case errors.Is(err, domain.ErrInvalidInput):
			// The source rejected this document alone, e.g. it is too large.
			return failed(fmt.Errorf("%w: fetch %s: %w", domain.ErrPipelineFailure, doc.ID, err)), nil
		case errors.Is(err, domain.ErrTransientFetch):
			return identityResult{}, err
		default:
			return identityResult{}, fmt.Errorf("%w: fetch %s: %w", domain.ErrTransientFetch, doc.ID, err)
		}
	}

	raw = withListingDefaults(raw, doc)

	chunks, err := s.pipeline.Process(dctx, raw)
	switch {
	case errors.Is(err, domain.ErrUnsupportedType):
		// Stale chunks from an earlier, supported version must not survive.
		removed, rerr := s.reconciler.Remove(ctx, doc.ID)
		if rerr != nil {
			return failed(rerr), nil
		}
		logger.Debug("Document %s skipped: %v", doc.ID, err)
		return identityResult{outcome: domain.OutcomeUnsupported, removed: removed}, nil
	case err != nil:
		if ctx.Err() == nil && errors.Is(dctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %s timed out after %s: %w", domain.ErrPipelineFailure, doc.ID, s.docTimeout, err)
		}
		return failed(err), nil
	}

	res, err := s.reconciler.Reconcile(ctx, doc.ID, chunks)
	if err != nil {
		return failed(err), nil
	}

	outcome := domain.OutcomeIndexed
	if res.Inserted == 0 {
		outcome = domain.OutcomeEmpty
	}
	return identityResult{outcome: outcome, inserted: res.Inserted, removed: res.Removed}, nil
}

// removeDocument removes the chunks of an identity no longer listed.
func (s *Syncer) removeDocument(ctx context.Context, id string) identityResult {
	removed, err := s.reconciler.Remove(ctx, id)
	if err != nil {
		return failed(err)
	}
	return identityResult{outcome: domain.OutcomeRemoved, removed: removed}
}

func failed(err error) identityResult {
	return identityResult{outcome: domain.OutcomeFailed, reason: err.Error()}
}

// withListingDefaults fills fields the repository left empty from the listing entry.
func withListingDefaults(raw *domain.RawDocument, doc domain.RemoteDocument) *domain.RawDocument {
	if raw == nil {
		raw = &domain.RawDocument{}
	}
	out := *raw
	out.DocumentID = doc.ID
	if out.URI == "" {
		out.URI = doc.URL
	}
	if out.Name == "" {
		out.Name = doc.Name
	}
	if out.MIMEType == "" {
		out.MIMEType = doc.MIMEType
	}
	return &out
}
