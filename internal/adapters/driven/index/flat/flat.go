// Package flat provides a brute-force exact nearest-neighbour document
// index under squared Euclidean distance, with synchronous disk
// persistence. The corpus is small enough that exact search in process
// memory beats maintaining an approximate structure.
package flat

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
	"github.com/preceptor-labs/preceptor-cli/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.DocumentIndex = (*Index)(nil)

// Index is the in-memory exact search structure plus its parallel
// document and metadata lists.
//
// Invariant: len(texts) == len(meta) == len(vectors) at all times, and
// position i is the same passage in all three. Writers hold the exclusive
// lock for the in-memory mutation AND the synchronous persistence write,
// so no reader ever observes diverged lengths.
type Index struct {
	mu          sync.RWMutex
	persist     *persister
	dim         int
	texts       []string
	meta        []map[string]any
	vectors     [][]float32
	idToPos     map[string]int
	lastUpdated time.Time
}

// New creates an index of the given dimension persisting into dir.
// An existing snapshot is restored; a corrupt one degrades to an empty
// store with a warning rather than failing startup.
func New(dir string, dim int) (*Index, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("flat: invalid dimension %d: %w", dim, domain.ErrInvalidInput)
	}

	p, err := newPersister(dir)
	if err != nil {
		return nil, fmt.Errorf("flat: init persistence: %w", err)
	}

	idx := &Index{
		persist: p,
		dim:     dim,
		idToPos: make(map[string]int),
	}

	if err := idx.Restore(); err != nil {
		if !errors.Is(err, domain.ErrCorruptSnapshot) {
			return nil, err
		}
		logger.Warn("Document index snapshot unusable, starting empty: %v", err)
	}

	return idx, nil
}

// Add appends documents and vectors, then flushes the snapshot to disk
// before returning. The batch is validated up front and rejected wholesale
// on any mismatch, and the in-memory lists only take the new entries once
// the disk write succeeds, so a failed save never leaves memory ahead of
// the snapshot.
func (idx *Index) Add(_ context.Context, records []domain.IngestRecord, vectors [][]float32) error {
	if len(records) == 0 {
		return nil
	}
	if len(records) != len(vectors) {
		return fmt.Errorf("flat: %d documents but %d vectors: %w",
			len(records), len(vectors), domain.ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != idx.dim {
			return fmt.Errorf("flat: vector %d has dimension %d, index expects %d: %w",
				i, len(v), idx.dim, domain.ErrDimensionMismatch)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	now := time.Now()
	texts := idx.texts
	meta := idx.meta
	vecs := idx.vectors
	added := make(map[string]int, len(records))
	for i, rec := range records {
		doc := domain.NewDocument(rec, vectors[i])
		pos := len(texts)

		doc.Metadata[domain.MetaDocID] = doc.ID
		doc.Metadata[domain.MetaAddedAt] = now.Format(time.RFC3339)
		doc.Metadata[domain.MetaDocIndex] = pos

		texts = append(texts, doc.Text)
		meta = append(meta, doc.Metadata)
		vecs = append(vecs, vectors[i])
		added[doc.ID] = pos
	}

	if err := idx.persist.save(texts, meta, vecs, idx.dim); err != nil {
		return fmt.Errorf("flat: persist snapshot: %w", err)
	}

	idx.texts = texts
	idx.meta = meta
	idx.vectors = vecs
	for id, pos := range added {
		idx.idToPos[id] = pos
	}
	idx.lastUpdated = now

	logger.Info("Indexed %d documents (total %d)", len(records), len(idx.texts))
	return nil
}

// Search computes exact squared Euclidean distances against every stored
// vector and returns the k best, ties broken by insertion order.
func (idx *Index) Search(_ context.Context, vector []float32, k int) (domain.SearchResult, error) {
	if len(vector) != idx.dim {
		return domain.SearchResult{}, fmt.Errorf("flat: query vector has dimension %d, index expects %d: %w",
			len(vector), idx.dim, domain.ErrDimensionMismatch)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.vectors) == 0 {
		return domain.SearchResult{}, nil
	}
	if k <= 0 {
		k = 3
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	order := make([]int, len(idx.vectors))
	dists := make([]float64, len(idx.vectors))
	for i, stored := range idx.vectors {
		order[i] = i
		dists[i] = squaredL2(stored, vector)
	}
	sort.SliceStable(order, func(a, b int) bool {
		return dists[order[a]] < dists[order[b]]
	})

	matches := make([]domain.DocumentMatch, 0, k)
	for _, pos := range order[:k] {
		matches = append(matches, domain.DocumentMatch{
			Text:     idx.texts[pos],
			Metadata: idx.meta[pos],
			Distance: dists[pos],
		})
	}

	return domain.SearchResult{Matches: matches}, nil
}

// Restore reloads the persisted snapshot as one atomic unit. Any missing
// or zero-length artifact means the whole store loads empty.
func (idx *Index) Restore() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	snap, err := idx.persist.load(idx.dim)
	if err != nil {
		idx.reset()
		return err
	}

	idx.texts = snap.texts
	idx.meta = snap.meta
	idx.vectors = snap.vectors
	idx.lastUpdated = snap.modified

	// Rebuild the id -> position lookup by scanning metadata.
	idx.idToPos = make(map[string]int, len(idx.meta))
	for pos, m := range idx.meta {
		if id, ok := m[domain.MetaDocID].(string); ok {
			idx.idToPos[id] = pos
		}
	}

	logger.Debug("Restored document index: %d passages", len(idx.texts))
	return nil
}

// Clear resets all in-memory and on-disk state to empty. Idempotent.
func (idx *Index) Clear() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.reset()
	if err := idx.persist.remove(); err != nil {
		return fmt.Errorf("flat: remove snapshot: %w", err)
	}

	logger.Info("Document index cleared")
	return nil
}

// Stats reports the read-only observability surface.
func (idx *Index) Stats() domain.IndexStats {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return domain.IndexStats{
		DocumentCount: len(idx.texts),
		Dimension:     idx.dim,
		LastUpdated:   idx.lastUpdated,
	}
}

// Contains reports whether a passage with the given content hash is stored.
// Duplicates are allowed on ingest; this only answers presence.
func (idx *Index) Contains(docID string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	_, ok := idx.idToPos[docID]
	return ok
}

// reset drops in-memory state. Caller holds the write lock.
func (idx *Index) reset() {
	idx.texts = nil
	idx.meta = nil
	idx.vectors = nil
	idx.idToPos = make(map[string]int)
	idx.lastUpdated = time.Time{}
}

// squaredL2 computes squared Euclidean distance between two vectors of
// equal length. On normalised vectors this is 2 - 2*cosine.
func squaredL2(a, b []float32) float64 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum
}
