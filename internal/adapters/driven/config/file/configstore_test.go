package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStoreSetGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("embedding.provider", "openai"))
	require.NoError(t, store.Set("retrieval.top_k", 5))
	require.NoError(t, store.Set("reader.enabled", true))
	require.NoError(t, store.Set("retrieval.min_score", 0.3))

	assert.Equal(t, "openai", store.GetString("embedding.provider"))
	assert.Equal(t, 5, store.GetInt("retrieval.top_k"))
	assert.True(t, store.GetBool("reader.enabled"))
	assert.InDelta(t, 0.3, store.GetFloat("retrieval.min_score"), 1e-9)
}

func TestConfigStoreMissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, "", store.GetString("nope"))
	assert.Equal(t, 0, store.GetInt("nope"))
	assert.Equal(t, 0.0, store.GetFloat("nope"))
	assert.False(t, store.GetBool("nope"))
}

func TestConfigStorePersistence(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("embedding.model", "all-minilm"))
	require.NoError(t, store.Set("retrieval.top_k", 3))

	// A fresh store reading the same file sees the values.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "all-minilm", reloaded.GetString("embedding.model"))
	assert.Equal(t, 3, reloaded.GetInt("retrieval.top_k"))
}

func TestConfigStoreFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	content := "[embedding]\nprovider = \"ollama\"\nmodel = \"all-minilm\"\n\n[retrieval]\ntop_k = 4\nmin_score = 0.25\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "ollama", store.GetString("embedding.provider"))
	assert.Equal(t, "all-minilm", store.GetString("embedding.model"))
	assert.Equal(t, 4, store.GetInt("retrieval.top_k"))
	assert.InDelta(t, 0.25, store.GetFloat("retrieval.min_score"), 1e-9)
}

func TestConfigStoreApplyDefaults(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	store.ApplyDefaults()

	assert.Equal(t, "ollama", store.GetString(KeyEmbeddingProvider))
	assert.Equal(t, 3, store.GetInt(KeyRetrievalTopK))
	assert.False(t, store.GetBool(KeyReaderEnabled))

	// Explicit values win over defaults.
	require.NoError(t, store.Set(KeyEmbeddingProvider, "openai"))
	store.ApplyDefaults()
	assert.Equal(t, "openai", store.GetString(KeyEmbeddingProvider))
}

func TestConfigStoreRestrictedPermissions(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("embedding.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
