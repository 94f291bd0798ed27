// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - EmbeddingService: Converts text to unit-norm vectors
//   - DocumentIndex: Exact nearest-neighbour search with disk persistence
//   - IntentIndex: Lexical matching against the curated intent table
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - Reader: Extractive QA model. Without it, answers use templated
//     extraction only.
//   - HistoryStore: Routing decision journal. Without it, queries are
//     simply not recorded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
