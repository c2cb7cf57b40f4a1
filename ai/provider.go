// Package ai turns an English question into SQL text using a hosted
// (or local) language model.
//
// Design decisions:
//   - Provider is an interface so backends (Gemini, OpenAI, Anthropic,
//     Ollama) can be swapped without changing the UI or pipeline.
//   - A provider makes exactly one request per call. There is no retry
//     or backoff; failures are classified and handed back to the caller.
//   - All methods accept context for cancellation and deadlines.
package ai

import (
	"context"
)

// Provider is the interface all AI backends must implement.
type Provider interface {
	// Complete sends the instruction prompt and the user's question and
	// returns the first text completion.
	Complete(ctx context.Context, prompt, question string) (string, error)

	// Name returns the provider name for display.
	Name() string
}
