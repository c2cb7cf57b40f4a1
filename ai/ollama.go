package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Ollama talks to a local Ollama server. No credential is needed.
type Ollama struct {
	host   string
	model  string
	client *http.Client
}

var _ Provider = (*Ollama)(nil)

func NewOllama(host, model string) *Ollama {
	if host == "" {
		host = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.2"
	}
	return &Ollama{host: strings.TrimRight(host, "/"), model: model, client: http.DefaultClient}
}

func (o *Ollama) Name() string {
	return fmt.Sprintf("Ollama (%s)", o.model)
}

// Complete uses the single-input /api/generate endpoint, so the
// instruction and the question travel as one rendered payload.
func (o *Ollama) Complete(ctx context.Context, prompt, question string) (string, error) {
	body := map[string]any{
		"model":  o.model,
		"prompt": joinPrompt(prompt, question),
		"stream": false,
	}

	var result struct {
		Response string `json:"response"`
		Done     bool   `json:"done"`
	}
	err := postJSON(ctx, o.client, "ollama", o.host+"/api/generate", nil, body, &result)
	var te *transportError
	if errors.As(err, &te) {
		return "", fmt.Errorf("ollama request failed (is Ollama running at %s?): %w", o.host, te.err)
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(result.Response) == "" {
		return "", fmt.Errorf("ollama: %w", ErrEmptyCompletion)
	}
	return result.Response, nil
}
