package file

// Configuration keys used across the CLI.
const (
	KeyEmbeddingProvider = "embedding.provider"
	KeyEmbeddingModel    = "embedding.model"
	KeyEmbeddingBaseURL  = "embedding.base_url"
	KeyEmbeddingAPIKey   = "embedding.api_key"

	KeyReaderEnabled = "reader.enabled"
	KeyReaderModel   = "reader.model"
	KeyReaderToken   = "reader.token"

	KeyRetrievalTopK = "retrieval.top_k"

	KeyDataDir     = "storage.data_dir"
	KeyIntentsPath = "storage.intents_path"
)

// Defaults applied when the config file does not set a key.
var defaults = map[string]any{
	KeyEmbeddingProvider: "ollama",
	KeyRetrievalTopK:     int64(3),
	KeyReaderEnabled:     false,
}

// ApplyDefaults fills missing keys with their default values without
// persisting them, so the config file only contains explicit choices.
func (s *ConfigStore) ApplyDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, value := range defaults {
		if _, ok := s.data[key]; !ok {
			s.data[key] = value
		}
	}
}
