package ai

import (
	"fmt"

	"github.com/DachengChen/askSQL/config"
)

// SupportedProviders lists available provider names for display.
var SupportedProviders = []string{
	config.ProviderGemini,
	config.ProviderOpenAI,
	config.ProviderAnthropic,
	config.ProviderOllama,
	config.ProviderPlaceholder,
}

// NewProvider creates an AI provider from the application config.
// A provider that needs a key and has none yields ErrMissingCredential.
func NewProvider(cfg config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case config.ProviderGemini, "":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("%w: Google API key not found. Set GOOGLE_API_KEY in your environment or .env file, or add it to ~/.asksql/config.json", ErrMissingCredential)
		}
		return NewGemini(cfg.Gemini.APIKey, cfg.Gemini.Model), nil

	case config.ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("%w: OpenAI API key not set. Set OPENAI_API_KEY or add it to ~/.asksql/config.json", ErrMissingCredential)
		}
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model), nil

	case config.ProviderAnthropic:
		if cfg.Anthropic.APIKey == "" {
			return nil, fmt.Errorf("%w: Anthropic API key not set. Set ANTHROPIC_API_KEY or add it to ~/.asksql/config.json", ErrMissingCredential)
		}
		return NewAnthropic(cfg.Anthropic.APIKey, cfg.Anthropic.Model), nil

	case config.ProviderOllama:
		return NewOllama(cfg.Ollama.Host, cfg.Ollama.Model), nil

	case config.ProviderPlaceholder:
		return NewPlaceholder(), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q. Supported: %v", cfg.Provider, SupportedProviders)
	}
}
