// Package domain defines the core business entities for Preceptor.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested reference passage with metadata and embedding
//   - Intent: A curated, lexically-triggered canned-response unit
//   - DocumentMatch / IntentMatch: Typed similarity search results
//   - Reply: The resolved answer for a routed query
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
