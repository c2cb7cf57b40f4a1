package config

// Provider names accepted in AIConfig.Provider.
const (
	ProviderGemini      = "gemini"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderOllama      = "ollama"
	ProviderPlaceholder = "placeholder"
)

// AIConfig holds the AI provider selection and credentials.
type AIConfig struct {
	Provider  string          `json:"provider"` // "gemini", "openai", "anthropic", "ollama", "placeholder"
	Gemini    GeminiConfig    `json:"gemini"`
	OpenAI    OpenAIConfig    `json:"openai"`
	Anthropic AnthropicConfig `json:"anthropic"`
	Ollama    OllamaConfig    `json:"ollama"`
}

// GeminiConfig holds Google Gemini-specific settings.
type GeminiConfig struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model"`
}

// OpenAIConfig holds OpenAI-specific settings.
type OpenAIConfig struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model"`
}

// AnthropicConfig holds Anthropic-specific settings.
type AnthropicConfig struct {
	APIKey string `json:"api_key,omitempty"`
	Model  string `json:"model"`
}

// OllamaConfig holds Ollama-specific settings.
type OllamaConfig struct {
	Host  string `json:"host"`
	Model string `json:"model"`
}

// DefaultAIConfig returns sensible defaults. Gemini is the default backend.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model: "gemini-2.5-pro",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-sonnet-4-20250514",
		},
		Ollama: OllamaConfig{
			Host:  "http://localhost:11434",
			Model: "llama3.2",
		},
	}
}

// SetModel overrides the model of the currently selected provider.
func (c *AIConfig) SetModel(model string) {
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderAnthropic:
		c.Anthropic.Model = model
	case ProviderOllama:
		c.Ollama.Model = model
	}
}

// Masked returns a copy with API keys reduced to a short prefix, safe to print.
func (c AIConfig) Masked() AIConfig {
	c.Gemini.APIKey = mask(c.Gemini.APIKey)
	c.OpenAI.APIKey = mask(c.OpenAI.APIKey)
	c.Anthropic.APIKey = mask(c.Anthropic.APIKey)
	return c
}

func mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "…" + key[len(key)-4:]
}
