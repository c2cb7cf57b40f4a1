package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// OpenAI uses the Chat Completions REST endpoint.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

var _ Provider = (*OpenAI)(nil)

func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAI{
		apiKey:  apiKey,
		model:   model,
		baseURL: "https://api.openai.com/v1",
		client:  http.DefaultClient,
	}
}

func (o *OpenAI) Name() string {
	return fmt.Sprintf("OpenAI (%s)", o.model)
}

type openAIResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// Complete sends the prompt as the system message and the question as
// the user message.
func (o *OpenAI) Complete(ctx context.Context, prompt, question string) (string, error) {
	body := map[string]any{
		"model":    o.model,
		"messages": chatMessages(prompt, question),
	}
	header := http.Header{"Authorization": {"Bearer " + o.apiKey}}

	var result openAIResponse
	err := postJSON(ctx, o.client, "openai", o.baseURL+"/chat/completions", header, body, &result)
	var te *transportError
	if errors.As(err, &te) {
		return "", fmt.Errorf("openai request failed: %w", te.err)
	}
	if err != nil {
		return "", err
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("openai: %w", ErrEmptyCompletion)
	}
	choice := result.Choices[0]
	if strings.TrimSpace(choice.Message.Content) == "" {
		if choice.FinishReason == "content_filter" {
			return "", &BlockedError{Provider: "openai", Reason: choice.FinishReason}
		}
		return "", fmt.Errorf("openai: %w", ErrEmptyCompletion)
	}
	return choice.Message.Content, nil
}
