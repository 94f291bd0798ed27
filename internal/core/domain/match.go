package domain

// MatchKind identifies which lexical rule produced an intent match.
// Each kind carries a fixed synthetic distance so intent matches are
// orderable and comparable with the router's distance thresholds.
type MatchKind string

const (
	// MatchPattern means the query contains a trigger phrase or a
	// trigger phrase contains the query.
	MatchPattern MatchKind = "pattern"

	// MatchTag means the intent's tag label appears verbatim in the query.
	MatchTag MatchKind = "tag"

	// MatchKeyword means the query contains a word from one of the broad
	// keyword classes (greeting, farewell, thanks, help-request).
	MatchKeyword MatchKind = "keyword"
)

// Synthetic distances per match kind, best first.
const (
	PatternDistance = 0.1
	TagDistance     = 0.3
	KeywordDistance = 0.5
)

// Distance returns the synthetic distance for the match kind.
func (k MatchKind) Distance() float64 {
	switch k {
	case MatchPattern:
		return PatternDistance
	case MatchTag:
		return TagDistance
	default:
		return KeywordDistance
	}
}

// IntentMatch is a scored hit against the intent index.
type IntentMatch struct {
	// Intent is the matched intent.
	Intent Intent

	// Distance is the synthetic distance of the best match kind.
	Distance float64

	// Kind is the rule that produced the match.
	Kind MatchKind
}

// DocumentMatch is a scored hit against the document index.
type DocumentMatch struct {
	// Text is the full passage content.
	Text string

	// Metadata is the stored metadata of the passage.
	Metadata map[string]any

	// Distance is the squared Euclidean distance to the query vector.
	// Zero means an identical (already-normalised) vector.
	Distance float64
}

// SearchResult is the ephemeral outcome of a similarity search,
// ordered ascending by distance (best match first).
type SearchResult struct {
	Matches []DocumentMatch
}

// Empty reports whether the search produced no usable hits.
func (r SearchResult) Empty() bool {
	return len(r.Matches) == 0
}

// Best returns the top-ranked match. Callers must check Empty first.
func (r SearchResult) Best() DocumentMatch {
	return r.Matches[0]
}

// Similarity converts a non-negative distance into a bounded (0, 1]
// confidence score: 1/(1+d) for d > 0, else 1.0. It is a smooth monotonic
// transform used for thresholding and display, not a calibrated probability.
func Similarity(distance float64) float64 {
	if distance > 0 {
		return 1 / (1 + distance)
	}
	return 1.0
}
