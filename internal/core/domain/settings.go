package domain

// AIProvider identifies an embedding service backend.
type AIProvider string

// Supported embedding providers.
const (
	ProviderOllama AIProvider = "ollama"
	ProviderOpenAI AIProvider = "openai"
)

// IsValid reports whether the provider is recognised.
func (p AIProvider) IsValid() bool {
	return p == ProviderOllama || p == ProviderOpenAI
}

// RequiresAPIKey reports whether the provider needs credentials.
func (p AIProvider) RequiresAPIKey() bool {
	return p == ProviderOpenAI
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name (provider default when empty).
	Model string

	// BaseURL is the API endpoint (for Ollama or API-compatible hosts).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string

	// Dimensions overrides the model's default vector size.
	Dimensions int
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}
