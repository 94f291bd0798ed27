package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding model call failed or
	// timed out. Ingestion and querying fail fast for the affected request;
	// no silent fallback vector is substituted.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrDimensionMismatch indicates an ingested vector count or width
	// disagrees with the index. The whole batch is rejected, nothing is
	// partially written.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrCorruptSnapshot indicates the persisted index artifacts are
	// inconsistent. The store degrades to empty rather than guess.
	ErrCorruptSnapshot = errors.New("corrupt index snapshot")

	// ErrNoMatch is a first-class outcome, not a failure: no resolution
	// path produced a usable answer and the fallback reply applies.
	ErrNoMatch = errors.New("no match")

	// ErrReaderUnavailable indicates the extractive QA model is not
	// configured. Model-backed generation silently falls back to the
	// template path.
	ErrReaderUnavailable = errors.New("reader service unavailable")
)
