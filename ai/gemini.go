package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini implements the Provider interface for Google's Gemini API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

var _ Provider = (*Gemini)(nil)

// NewGemini creates a Gemini provider.
func NewGemini(apiKey, model string) *Gemini {
	if model == "" {
		model = "gemini-2.5-pro"
	}
	return &Gemini{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		client:  http.DefaultClient,
	}
}

func (g *Gemini) Name() string {
	return fmt.Sprintf("Gemini (%s)", g.model)
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Complete sends the prompt and the question as two parts of a single
// user turn and returns the text of the first candidate.
func (g *Gemini) Complete(ctx context.Context, prompt, question string) (string, error) {
	body := map[string]any{
		"contents": []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: prompt}, {Text: question}},
		}},
	}
	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	header := http.Header{"X-Goog-Api-Key": {g.apiKey}}

	var result geminiResponse
	err := postJSON(ctx, g.client, "gemini", url, header, body, &result)
	var te *transportError
	if errors.As(err, &te) {
		return "", fmt.Errorf("gemini request failed: %w", te.err)
	}
	if err != nil {
		return "", err
	}

	if len(result.Candidates) == 0 {
		if reason := result.PromptFeedback.BlockReason; reason != "" {
			return "", &BlockedError{Provider: "gemini", Reason: reason}
		}
		return "", fmt.Errorf("gemini: %w", ErrEmptyCompletion)
	}

	first := result.Candidates[0]
	if len(first.Content.Parts) == 0 {
		if reason := first.FinishReason; reason != "" && reason != "STOP" {
			return "", &BlockedError{Provider: "gemini", Reason: reason}
		}
		return "", fmt.Errorf("gemini: %w", ErrEmptyCompletion)
	}

	// Concatenate all text parts
	var sb strings.Builder
	for _, p := range first.Content.Parts {
		sb.WriteString(p.Text)
	}
	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: %w", ErrEmptyCompletion)
	}

	return text, nil
}
