// Package sqlite provides a unified SQLite-based implementation of driven port interfaces.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. It implements every persistent store through a single database connection:
//
//   - WatermarkStore: document identity to change token
//   - ChunkStore: derived chunks keyed by owning document identity
//   - SchedulerStore: periodic task state and history
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each applied version is recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.sprag/data/sprag.db
//
// # Atomicity
//
// ReplaceChunks and SetAll each run inside one transaction, so readers see
// either the old set or the new set and never a mix.
package sqlite
