// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - RemoteRepository: Lists and fetches documents from the remote corpus
//   - WatermarkStore: Durable identity -> change token mapping
//   - ChunkStore: The derived store reconciled by each pass
//   - ContentPipeline: fetch output -> ordered chunks
//   - NormaliserRegistry / PostProcessorPipeline: stages behind ContentPipeline
//   - SchedulerStore: Periodic trigger persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - EmbeddingService: Without it, chunks are stored without vectors.
//   - Notifier: Repositories that can push change hints (filesystem).
//   - SubscriptionManager: Repositories with remote change subscriptions (SharePoint).
//   - PassLock: Cross-process exclusion of passes on one data directory.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
