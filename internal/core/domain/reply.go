package domain

// PreviewLength is the maximum length of an evidence content preview.
const PreviewLength = 100

// MaxEvidence is the number of supporting documents surfaced to the caller.
const MaxEvidence = 2

// Evidence is one retrieved document surfaced alongside a
// retrieval-backed answer.
type Evidence struct {
	// Preview is the passage text truncated to PreviewLength characters,
	// with an ellipsis when shortened.
	Preview string `json:"content_preview"`

	// Metadata is the stored metadata of the passage.
	Metadata map[string]any `json:"metadata"`
}

// NewEvidence builds an Evidence entry from a document match.
func NewEvidence(m DocumentMatch) Evidence {
	preview := m.Text
	if runes := []rune(preview); len(runes) > PreviewLength {
		preview = string(runes[:PreviewLength]) + "..."
	}
	return Evidence{Preview: preview, Metadata: m.Metadata}
}

// Reply is the ephemeral outcome of routing a single query.
// The router is stateless between queries; no session memory lives here.
type Reply struct {
	// Text is the resolved answer.
	Text string `json:"text"`

	// UsedRetrieval is true when the answer came from document search,
	// false for intent and fallback answers.
	UsedRetrieval bool `json:"used_retrieval"`

	// Confidence is a bounded [0,1] heuristic score derived from the
	// winning match distance. Fallback replies carry zero confidence.
	Confidence float64 `json:"confidence"`

	// Evidence lists up to MaxEvidence supporting documents, best first.
	// Empty for intent and fallback replies.
	Evidence []Evidence `json:"evidence,omitempty"`
}
