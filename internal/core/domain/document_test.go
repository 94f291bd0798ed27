package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocID_Deterministic(t *testing.T) {
	id1 := DocID("El módulo dura 6 semanas.")
	id2 := DocID("El módulo dura 6 semanas.")

	assert.Equal(t, id1, id2)
	assert.Len(t, id1, DocIDLength)
}

func TestDocID_DiffersByContent(t *testing.T) {
	id1 := DocID("primer documento")
	id2 := DocID("segundo documento")

	assert.NotEqual(t, id1, id2)
}

func TestNewDocument(t *testing.T) {
	rec := IngestRecord{
		Text:     "Las inscripciones abren en enero.",
		Metadata: map[string]any{"title": "inscripciones"},
	}
	vec := []float32{0.6, 0.8}

	doc := NewDocument(rec, vec)

	assert.Equal(t, DocID(rec.Text), doc.ID)
	assert.Equal(t, rec.Text, doc.Text)
	assert.Equal(t, "inscripciones", doc.Metadata["title"])
	assert.Equal(t, vec, doc.Vector)
}

func TestNewDocument_NilMetadata(t *testing.T) {
	doc := NewDocument(IngestRecord{Text: "sin metadata"}, nil)

	require.NotNil(t, doc.Metadata)
	assert.Empty(t, doc.Metadata)
}
