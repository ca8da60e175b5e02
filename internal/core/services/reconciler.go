package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sab110/Sharepoint-RAG/internal/core/domain"
	"github.com/sab110/Sharepoint-RAG/internal/core/ports/driven"
	"github.com/sab110/Sharepoint-RAG/internal/logger"
)

// ReconcileResult reports what one replacement did to the chunk store.
type ReconcileResult struct {
	Inserted int
	Removed  int
}

// Reconciler applies per-document replacements to the chunk store.
// Operations on different identities are independent of each other.
type Reconciler struct {
	store driven.ChunkStore
	newID func() string
}

// NewReconciler creates a reconciler over a chunk store.
func NewReconciler(store driven.ChunkStore) *Reconciler {
	return &Reconciler{
		store: store,
		newID: uuid.NewString,
	}
}

// Reconcile replaces every chunk owned by documentID with chunks.
// Each inserted chunk gets a fresh ID and its index as position.
// Zero chunks removes the document's chunks and is not an error.
func (r *Reconciler) Reconcile(ctx context.Context, documentID string, chunks []domain.Chunk) (ReconcileResult, error) {
	fresh := make([]domain.Chunk, len(chunks))
	for i, c := range chunks {
		c.ID = r.newID()
		c.DocumentID = documentID
		c.Position = i
		fresh[i] = c
	}

	removed, err := r.store.ReplaceChunks(ctx, documentID, fresh)
	if err != nil {
		return ReconcileResult{}, fmt.Errorf("%w: replace chunks for %s: %w", domain.ErrStoreWrite, documentID, err)
	}

	if len(fresh) == 0 {
		logger.Warn("Document %s produced no chunks (removed %d)", documentID, removed)
	} else {
		logger.Debug("Document %s: %d chunks replaced by %d", documentID, removed, len(fresh))
	}

	return ReconcileResult{Inserted: len(fresh), Removed: removed}, nil
}

// Remove deletes every chunk owned by documentID.
// Removing a document with no chunks is a no-op.
func (r *Reconciler) Remove(ctx context.Context, documentID string) (int, error) {
	removed, err := r.store.DeleteChunks(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("%w: delete chunks for %s: %w", domain.ErrStoreWrite, documentID, err)
	}
	logger.Debug("Document %s: removed %d chunks", documentID, removed)
	return removed, nil
}
