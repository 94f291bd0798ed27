package driven

import "context"

// Span is an extractive answer located inside a passage.
type Span struct {
	// Text is the extracted answer span.
	Text string

	// Score is the model's reported confidence in [0,1].
	Score float64
}

// Reader is an extractive question-answering model consulted before
// templated generation. This is an optional service - when nil, answers
// are produced by sentence extraction only.
//
// Implementations may include hosted inference endpoints for lightweight
// Spanish QA models (e.g. distilled BERT variants).
type Reader interface {
	// Extract locates an answer span for the question inside the passage.
	Extract(ctx context.Context, question, passage string) (Span, error)

	// ModelName returns the name of the QA model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
