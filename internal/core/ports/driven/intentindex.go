package driven

import "github.com/preceptor-labs/preceptor-cli/internal/core/domain"

// IntentIndex matches a query against the curated intent table by lexical
// rules. It exposes the same ordered, distance-scored result shape as the
// document index so the router can compare both paths uniformly.
//
// The matcher is deliberately crude; robustness comes from the router's
// decision policy, not from the matcher's precision.
type IntentIndex interface {
	// Match returns the best-scoring intents for the query, ascending by
	// synthetic distance, truncated to k. No match of any kind yields an
	// empty list, not an error.
	Match(query string, k int) []domain.IntentMatch

	// Load replaces the intent table wholesale.
	Load(set domain.IntentSet) error

	// Count returns the number of loaded intents.
	Count() int
}
