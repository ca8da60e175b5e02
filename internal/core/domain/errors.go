package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no normaliser handles a content type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrNotConfigured indicates a required setting is missing.
	ErrNotConfigured = errors.New("not configured")

	// Synchronisation Errors.

	// ErrTransientFetch indicates the remote listing or a content fetch failed.
	// The whole pass is aborted and the watermark is left untouched.
	ErrTransientFetch = errors.New("transient fetch error")

	// ErrPipelineFailure indicates parse, chunk or embed failed for one document.
	// Only that identity is affected.
	ErrPipelineFailure = errors.New("pipeline failure")

	// ErrStoreWrite indicates a derived store mutation failed for one document.
	ErrStoreWrite = errors.New("store write failed")

	// ErrWatermarkUnavailable indicates the watermark store could not be read or
	// committed. The whole pass is aborted.
	ErrWatermarkUnavailable = errors.New("watermark store unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
