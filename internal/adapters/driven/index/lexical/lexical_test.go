package lexical

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preceptor-labs/preceptor-cli/internal/core/domain"
)

func testSet() domain.IntentSet {
	return domain.IntentSet{
		Intents: []domain.Intent{
			{
				Tag:       "saludo",
				Patterns:  []string{"hola", "buenos días", "buenas tardes"},
				Responses: []string{"¡Hola! ¿En qué puedo ayudarte?", "¡Buen día! Dime tu duda."},
				Context:   "welcome",
			},
			{
				Tag:       "despedida",
				Patterns:  []string{"adiós", "hasta luego", "nos vemos"},
				Responses: []string{"¡Hasta luego! Que te vaya bien."},
				Context:   "farewell",
			},
			{
				Tag:       "agradecimiento",
				Patterns:  []string{"gracias", "muchas gracias"},
				Responses: []string{"¡De nada! Para eso estoy."},
				Context:   "thanks",
			},
		},
	}
}

func newLoadedIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, idx.Load(testSet()))
	return idx
}

func TestMatch_PatternContainment(t *testing.T) {
	idx := newLoadedIndex(t)

	matches := idx.Match("hola, ¿qué tal?", 3)
	require.NotEmpty(t, matches)
	assert.Equal(t, "saludo", matches[0].Intent.Tag)
	assert.Equal(t, domain.MatchPattern, matches[0].Kind)
	assert.Equal(t, 0.1, matches[0].Distance)
}

func TestMatch_QueryInsidePattern(t *testing.T) {
	idx := newLoadedIndex(t)

	// "buenos" is contained in the pattern "buenos días".
	matches := idx.Match("buenos", 3)
	require.NotEmpty(t, matches)
	assert.Equal(t, "saludo", matches[0].Intent.Tag)
	assert.Equal(t, domain.MatchPattern, matches[0].Kind)
}

func TestMatch_TagContainment(t *testing.T) {
	idx, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, idx.Load(domain.IntentSet{Intents: []domain.Intent{
		{Tag: "horario", Patterns: []string{"a qué hora abren"}, Responses: []string{"De 8 a 14."}},
	}}))

	matches := idx.Match("dime el horario por favor", 3)
	require.NotEmpty(t, matches)
	assert.Equal(t, domain.MatchTag, matches[0].Kind)
	assert.Equal(t, 0.3, matches[0].Distance)
}

func TestMatch_KeywordClass(t *testing.T) {
	idx, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, idx.Load(domain.IntentSet{Intents: []domain.Intent{
		{Tag: "bienvenida", Patterns: []string{"quiero empezar"}, Responses: []string{"¡Bienvenido!"}},
	}}))

	// No pattern or tag hit, but "saludos" belongs to a keyword class.
	matches := idx.Match("saludos desde el aula", 3)
	require.NotEmpty(t, matches)
	assert.Equal(t, domain.MatchKeyword, matches[0].Kind)
	assert.Equal(t, 0.5, matches[0].Distance)
}

func TestMatch_BestKindPerIntent(t *testing.T) {
	idx := newLoadedIndex(t)

	// "hola" is both a pattern of saludo and a keyword-class word; only
	// the strongest kind is kept for the intent.
	matches := idx.Match("hola", 3)
	require.NotEmpty(t, matches)
	assert.Equal(t, "saludo", matches[0].Intent.Tag)
	assert.Equal(t, 0.1, matches[0].Distance)
}

func TestMatch_SortedAndTruncated(t *testing.T) {
	idx := newLoadedIndex(t)

	// A greeting keyword makes every intent match at 0.5, while saludo
	// pattern-matches at 0.1 and sorts first.
	matches := idx.Match("hola", 2)
	require.Len(t, matches, 2)
	assert.LessOrEqual(t, matches[0].Distance, matches[1].Distance)
	assert.Equal(t, "saludo", matches[0].Intent.Tag)
}

func TestMatch_NoMatchIsEmptyNotError(t *testing.T) {
	idx := newLoadedIndex(t)

	assert.Empty(t, idx.Match("¿cuánto dura el módulo de matemáticas?", 3))
	assert.Empty(t, idx.Match("", 3))
	assert.Empty(t, idx.Match("...", 3))
}

func TestMatch_EmptyTable(t *testing.T) {
	idx, err := New(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, idx.Match("hola", 3))
}

func TestLoad_ReplacesWholesale(t *testing.T) {
	idx := newLoadedIndex(t)
	require.Equal(t, 3, idx.Count())

	require.NoError(t, idx.Load(domain.IntentSet{Intents: []domain.Intent{
		{Tag: "unico", Patterns: []string{"solo"}, Responses: []string{"ok"}},
	}}))

	assert.Equal(t, 1, idx.Count())

	// The old saludo intent is gone, so "hola" no longer pattern-matches;
	// as a greeting keyword it still reaches the replacement intent at 0.5.
	matches := idx.Match("hola", 3)
	require.Len(t, matches, 1)
	assert.Equal(t, "unico", matches[0].Intent.Tag)
	assert.Equal(t, domain.MatchKeyword, matches[0].Kind)
	assert.Equal(t, 0.5, matches[0].Distance)

	// A query outside every keyword class matches nothing at all.
	assert.Empty(t, idx.Match("cuánto dura el curso", 3))
}

func TestLoadFile_MissingSourceSynthesisesFallback(t *testing.T) {
	dir := t.TempDir()
	idx, err := New(dir)
	require.NoError(t, err)

	source := filepath.Join(dir, "definitions", "intents.json")
	require.NoError(t, idx.LoadFile(source))

	// At least one greeting-tagged intent is always present.
	assert.Equal(t, 1, idx.Count())
	matches := idx.Match("hola", 1)
	require.NotEmpty(t, matches)
	assert.Equal(t, "saludo", matches[0].Intent.Tag)

	// The fallback table was written back to the source path.
	data, err := os.ReadFile(source)
	require.NoError(t, err)
	var set domain.IntentSet
	require.NoError(t, json.Unmarshal(data, &set))
	assert.Len(t, set.Intents, 1)
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	idx, err := New(dir)
	require.NoError(t, err)

	source := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(source, []byte("{nope"), 0o600))

	err = idx.LoadFile(source)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNew_RestoresPersistedCopy(t *testing.T) {
	dir := t.TempDir()
	idx, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, idx.Load(testSet()))

	reloaded, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Count())
}
