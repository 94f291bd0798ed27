package flat

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

// Persisted artifact names. All three are required to be mutually
// consistent; absence or truncation of any one is treated as "store is
// empty", never as a partial load.
const (
	vectorsFile   = "vectors.bin"
	documentsFile = "documents.json"
	metadataFile  = "metadata.json"
)

// persister serialises the parallel lists into one directory.
type persister struct {
	dir string
}

// snapshot is the aggregate state read back from disk.
type snapshot struct {
	texts    []string
	meta     []map[string]any
	vectors  [][]float32
	modified time.Time
}

func newPersister(dir string) (*persister, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &persister{dir: dir}, nil
}

// save writes all artifacts. Each file is written to a temp path and
// renamed so a crash mid-write leaves either the old or the new artifact,
// not a torn one.
func (p *persister) save(texts []string, meta []map[string]any, vectors [][]float32, dim int) error {
	docsJSON, err := json.Marshal(texts)
	if err != nil {
		return fmt.Errorf("encode documents: %w", err)
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	if err := p.writeFile(documentsFile, docsJSON); err != nil {
		return err
	}
	if err := p.writeFile(metadataFile, metaJSON); err != nil {
		return err
	}
	return p.writeFile(vectorsFile, encodeVectors(vectors, dim))
}

// load reads all artifacts back as one atomic unit.
func (p *persister) load(dim int) (snapshot, error) {
	docsRaw, ok1 := p.readFile(documentsFile)
	metaRaw, ok2 := p.readFile(metadataFile)
	vecsRaw, ok3 := p.readFile(vectorsFile)

	// Missing or empty artifacts mean an empty store, not an error.
	if !ok1 || !ok2 || !ok3 {
		return snapshot{}, nil
	}

	var texts []string
	if err := json.Unmarshal(docsRaw, &texts); err != nil {
		return snapshot{}, fmt.Errorf("decode %s: %v: %w", documentsFile, err, domain.ErrCorruptSnapshot)
	}
	var meta []map[string]any
	if err := json.Unmarshal(metaRaw, &meta); err != nil {
		return snapshot{}, fmt.Errorf("decode %s: %v: %w", metadataFile, err, domain.ErrCorruptSnapshot)
	}
	vectors, err := decodeVectors(vecsRaw, dim)
	if err != nil {
		return snapshot{}, fmt.Errorf("decode %s: %v: %w", vectorsFile, err, domain.ErrCorruptSnapshot)
	}

	if len(texts) != len(meta) || len(texts) != len(vectors) {
		return snapshot{}, fmt.Errorf("artifact lengths diverge (documents=%d metadata=%d vectors=%d): %w",
			len(texts), len(meta), len(vectors), domain.ErrCorruptSnapshot)
	}

	modified := time.Time{}
	if info, err := os.Stat(filepath.Join(p.dir, documentsFile)); err == nil {
		modified = info.ModTime()
	}

	return snapshot{texts: texts, meta: meta, vectors: vectors, modified: modified}, nil
}

// remove deletes all artifacts. Missing files are not an error.
func (p *persister) remove() error {
	for _, name := range []string{vectorsFile, documentsFile, metadataFile} {
		if err := os.Remove(filepath.Join(p.dir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

func (p *persister) writeFile(name string, data []byte) error {
	path := filepath.Join(p.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s: %w", name, err)
	}
	return nil
}

// readFile returns the file contents and whether the artifact is usable.
// Missing and zero-length files both report false.
func (p *persister) readFile(name string) ([]byte, bool) {
	data, err := os.ReadFile(filepath.Join(p.dir, name))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Binary layout of vectors.bin: two little-endian uint32 headers
// (row count, dimension) followed by count*dim float32 values.
const vectorHeaderSize = 8

func encodeVectors(vectors [][]float32, dim int) []byte {
	buf := make([]byte, vectorHeaderSize+len(vectors)*dim*4)
	binary.LittleEndian.PutUint32(buf[0:], uint32(len(vectors)))
	binary.LittleEndian.PutUint32(buf[4:], uint32(dim))

	off := vectorHeaderSize
	for _, vec := range vectors {
		for _, f := range vec {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(f))
			off += 4
		}
	}
	return buf
}

func decodeVectors(data []byte, dim int) ([][]float32, error) {
	if len(data) < vectorHeaderSize {
		return nil, errors.New("truncated header")
	}
	count := int(binary.LittleEndian.Uint32(data[0:]))
	storedDim := int(binary.LittleEndian.Uint32(data[4:]))
	if storedDim != dim {
		return nil, fmt.Errorf("stored dimension %d, index expects %d", storedDim, dim)
	}
	if len(data) != vectorHeaderSize+count*dim*4 {
		return nil, fmt.Errorf("expected %d bytes of vector data, got %d",
			vectorHeaderSize+count*dim*4, len(data))
	}

	vectors := make([][]float32, count)
	off := vectorHeaderSize
	for i := range vectors {
		row := make([]float32, dim)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}
		vectors[i] = row
	}
	return vectors, nil
}
