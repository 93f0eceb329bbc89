package file

import (
	"os"
	"path/filepath"

	"github.com/docquery/docquery/internal/core/domain"
	"github.com/docquery/docquery/internal/core/ports/driven"
)

// Configuration keys.
const (
	KeyStorageDir          = "storage.dir"
	KeyEmbeddingProvider   = "embedding.provider"
	KeyEmbeddingModel      = "embedding.model"
	KeyEmbeddingBaseURL    = "embedding.base_url"
	KeyEmbeddingAPIKey     = "embedding.api_key"
	KeyEmbeddingDimensions = "embedding.dimensions"
)

// Environment overrides. Each takes precedence over the config file.
const (
	EnvStorageDir        = "DOCQUERY_STORAGE_DIR"
	EnvEmbeddingProvider = "DOCQUERY_EMBEDDING_PROVIDER"
	EnvEmbeddingModel    = "DOCQUERY_EMBEDDING_MODEL"
	EnvOllamaBaseURL     = "OLLAMA_HOST"
	EnvOpenAIAPIKey      = "OPENAI_API_KEY"
)

// ResolveStorageDir returns the markdown storage directory, preferring the
// DOCQUERY_STORAGE_DIR environment variable over the config file, falling
// back to ~/.docquery/storage.
func ResolveStorageDir(store driven.ConfigStore) string {
	if dir := os.Getenv(EnvStorageDir); dir != "" {
		return dir
	}
	if dir := store.GetString(KeyStorageDir); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "storage"
	}
	return filepath.Join(home, ".docquery", "storage")
}

// ResolveEmbeddingSettings assembles embedding provider settings from the
// config file with environment overrides. The provider defaults to Ollama,
// or to OpenAI when only an API key is present.
func ResolveEmbeddingSettings(store driven.ConfigStore) domain.EmbeddingSettings {
	settings := domain.EmbeddingSettings{
		Provider:   domain.AIProvider(store.GetString(KeyEmbeddingProvider)),
		Model:      store.GetString(KeyEmbeddingModel),
		BaseURL:    store.GetString(KeyEmbeddingBaseURL),
		APIKey:     store.GetString(KeyEmbeddingAPIKey),
		Dimensions: store.GetInt(KeyEmbeddingDimensions),
	}

	if v := os.Getenv(EnvEmbeddingProvider); v != "" {
		settings.Provider = domain.AIProvider(v)
	}
	if v := os.Getenv(EnvEmbeddingModel); v != "" {
		settings.Model = v
	}
	if v := os.Getenv(EnvOpenAIAPIKey); v != "" {
		settings.APIKey = v
	}

	if !settings.Provider.IsValid() {
		if settings.APIKey != "" {
			settings.Provider = domain.ProviderOpenAI
		} else {
			settings.Provider = domain.ProviderOllama
		}
	}

	if settings.Provider == domain.ProviderOllama {
		if v := os.Getenv(EnvOllamaBaseURL); v != "" {
			settings.BaseURL = v
		}
	}

	return settings
}
