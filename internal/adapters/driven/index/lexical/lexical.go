// Package lexical provides the intent index: a small, hand-curated table
// of canned intents matched against queries by lexical rules. No vectors
// are involved, but matches carry synthetic distances so the router can
// compare them against its distance thresholds.
package lexical

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
	"github.com/preceptor-labs/preceptor-cli/internal/core/ports/driven"
	"github.com/preceptor-labs/preceptor-cli/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.IntentIndex = (*Index)(nil)

// intentsFile is the local copy persisted next to the vector artifacts.
const intentsFile = "intents.json"

// keywordClasses are the broad categories backing the weakest match kind.
// A query containing any word from any class counts as a keyword match.
var keywordClasses = map[string][]string{
	"saludo":    {"hola", "buenos", "buenas", "saludos", "qué tal", "cómo estás"},
	"despedida": {"adiós", "hasta luego", "chao", "bye", "nos vemos"},
	"ayuda":     {"ayuda", "ayúdame", "asistencia", "soporte"},
	"gracias":   {"gracias", "agradecido", "agradezco"},
}

// Index holds the intent table. The table is immutable between loads and
// replaced wholesale, never partially updated.
type Index struct {
	mu   sync.RWMutex
	set  domain.IntentSet
	path string
}

// New creates an intent index persisting its local copy into dir.
// A previously persisted table is restored when present.
func New(dir string) (*Index, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("lexical: create data dir: %w", err)
	}

	idx := &Index{path: filepath.Join(dir, intentsFile)}

	data, err := os.ReadFile(idx.path)
	if err == nil && len(data) > 0 {
		var set domain.IntentSet
		if err := json.Unmarshal(data, &set); err != nil {
			logger.Warn("Persisted intent table unreadable, ignoring: %v", err)
		} else {
			idx.set = set
			logger.Debug("Restored %d intents", len(set.Intents))
		}
	}

	return idx, nil
}

// LoadFile replaces the table from an external definition file. When the
// source is missing, the built-in fallback table is loaded instead and
// written to the source path so the next run finds it.
//
// Loading the local copy itself skips re-persisting: the rename-replace
// would retrigger a file watch on that path, and on Linux it would drop
// the inotify watch entirely.
func (idx *Index) LoadFile(path string) error {
	persist := filepath.Clean(path) != filepath.Clean(idx.path)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn("Intent definition %s missing, synthesising fallback table", path)
		fallback := domain.DefaultIntentSet()
		if writeErr := writeIntentFile(path, fallback); writeErr != nil {
			logger.Warn("Could not write fallback intent file: %v", writeErr)
		}
		return idx.replace(fallback, persist)
	}
	if err != nil {
		return fmt.Errorf("lexical: read intent definition: %w", err)
	}

	var set domain.IntentSet
	if err := json.Unmarshal(data, &set); err != nil {
		return fmt.Errorf("lexical: decode intent definition: %v: %w", err, domain.ErrInvalidInput)
	}
	return idx.replace(set, persist)
}

// Load replaces the intent table wholesale and persists the local copy.
func (idx *Index) Load(set domain.IntentSet) error {
	return idx.replace(set, true)
}

func (idx *Index) replace(set domain.IntentSet, persist bool) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.set = set
	if persist {
		if err := writeIntentFile(idx.path, set); err != nil {
			return fmt.Errorf("lexical: persist intent table: %w", err)
		}
	}

	logger.Info("Loaded %d intents", len(set.Intents))
	return nil
}

// Count returns the number of loaded intents.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.set.Intents)
}

// Match tests every intent against the query with three match kinds in
// priority order (pattern containment, tag containment, keyword-class
// membership), keeps the best kind per intent, and returns the matches
// ascending by synthetic distance, truncated to k.
func (idx *Index) Match(query string, k int) []domain.IntentMatch {
	cleaned := domain.CleanQuery(query)
	if cleaned == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	keywordHit := containsAnyKeyword(cleaned)

	var matches []domain.IntentMatch
	for _, intent := range idx.set.Intents {
		kind, ok := bestKind(intent, cleaned, keywordHit)
		if !ok {
			continue
		}
		matches = append(matches, domain.IntentMatch{
			Intent:   intent,
			Distance: kind.Distance(),
			Kind:     kind,
		})
	}

	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Distance < matches[b].Distance
	})
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// bestKind returns the strongest match kind for one intent, if any.
func bestKind(intent domain.Intent, cleaned string, keywordHit bool) (domain.MatchKind, bool) {
	for _, pattern := range intent.Patterns {
		p := domain.CleanQuery(pattern)
		if p == "" {
			continue
		}
		if strings.Contains(cleaned, p) || strings.Contains(p, cleaned) {
			return domain.MatchPattern, true
		}
	}

	if tag := domain.CleanQuery(intent.Tag); tag != "" && strings.Contains(cleaned, tag) {
		return domain.MatchTag, true
	}

	if keywordHit {
		return domain.MatchKeyword, true
	}

	return "", false
}

func containsAnyKeyword(cleaned string) bool {
	for _, words := range keywordClasses {
		for _, w := range words {
			if strings.Contains(cleaned, w) {
				return true
			}
		}
	}
	return false
}

func writeIntentFile(path string, set domain.IntentSet) error {
	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
