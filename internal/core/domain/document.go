package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Reserved metadata keys injected by the document index at ingestion time.
const (
	// MetaDocID is the content-hash identifier of the document.
	MetaDocID = "doc_id"

	// MetaAddedAt is the ingestion timestamp (RFC 3339).
	MetaAddedAt = "added_at"

	// MetaDocIndex is the positional index within the store.
	MetaDocIndex = "doc_index"

	// MetaBatchID groups documents ingested in the same batch.
	MetaBatchID = "batch_id"
)

// DocIDLength is the number of hex characters kept from the content hash.
const DocIDLength = 12

// Document represents an ingested reference passage.
// Documents are immutable once stored: they are created on ingest,
// never updated in place, and removed only by a full store clear.
type Document struct {
	// ID is a deterministic hash of Text. Re-ingesting identical text
	// produces the same ID, which makes re-ingestion detectable.
	// Duplicates are currently allowed and create distinct positions.
	ID string

	// Text is the full passage content.
	Text string

	// Metadata contains arbitrary key-value pairs (source, category,
	// priority, timestamps, position in source).
	Metadata map[string]any

	// Vector is the unit-norm embedding of Text.
	Vector []float32
}

// IngestRecord is a raw document handed to the ingestion path before
// vectorisation: text plus an open metadata map.
type IngestRecord struct {
	Text     string         `json:"text"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// DocID computes the stable content-hash identifier for a passage.
func DocID(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:DocIDLength]
}

// NewDocument builds a Document from an ingest record and its embedding.
// The caller is responsible for vector normalisation.
func NewDocument(rec IngestRecord, vector []float32) Document {
	meta := rec.Metadata
	if meta == nil {
		meta = make(map[string]any)
	}
	return Document{
		ID:       DocID(rec.Text),
		Text:     rec.Text,
		Metadata: meta,
		Vector:   vector,
	}
}

// IndexStats is the read-only observability surface of the document index.
type IndexStats struct {
	// DocumentCount is the number of stored passages.
	DocumentCount int `json:"document_count"`

	// Dimension is the embedding width the index was built for.
	Dimension int `json:"index_dimension"`

	// LastUpdated is the time of the most recent mutation,
	// zero if the store has never been written.
	LastUpdated time.Time `json:"last_updated"`
}
