package llm

// Provider represents an LLM provider.
type Provider string

// Provider constants define supported LLM providers.
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// DefaultModel is used when the caller does not name a model explicitly.
const DefaultModel = "gemini-2.5-flash"

// Config holds the model configuration for the delegated scoring backend.
type Config struct {
	Provider Provider
	// Model is the default backend model name.
	Model string
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Model:    DefaultModel,
	}
}

// ResolveModel returns the model to use for a request: the explicit override
// when given, otherwise the configured default.
func (c *Config) ResolveModel(override string) string {
	if override != "" {
		return override
	}
	return c.Model
}
