// Package domain defines the core entities of the index synchroniser.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RemoteDocument: One entry of a remote listing (identity + change token)
//   - Watermark: The last-processed change token per document identity
//   - Diff: The partition of identities computed from a listing and a watermark
//   - Chunk: A derived, embedded content unit owned by one document identity
//   - RunState / TriggerResult / PassSummary: Run controller vocabulary
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
