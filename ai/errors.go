package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrMissingCredential means the selected provider needs an API key
	// and none was configured.
	ErrMissingCredential = errors.New("API credential not configured")

	// ErrRateLimited means the remote service rejected the request for
	// quota or rate reasons.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrAuth means the credential was rejected.
	ErrAuth = errors.New("authentication failed")

	// ErrEmptyCompletion means the service answered without any text,
	// usually because safety filters blocked the content.
	ErrEmptyCompletion = errors.New("empty completion")
)

// APIError is a non-2xx response from a model service.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
	kind       error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API error (%d): %s", e.Provider, e.StatusCode, strings.TrimSpace(e.Body))
}

// Unwrap exposes the category (ErrRateLimited, ErrAuth) when there is one.
func (e *APIError) Unwrap() error {
	return e.kind
}

// BlockedError is an empty completion with a known reason, e.g. the
// prompt feedback block reason or a SAFETY finish reason.
type BlockedError struct {
	Provider string
	Reason   string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s returned no content (blocked: %s)", e.Provider, e.Reason)
}

func (e *BlockedError) Unwrap() error {
	return ErrEmptyCompletion
}

// statusError classifies an HTTP failure into an *APIError.
func statusError(provider string, status int, body []byte) error {
	e := &APIError{Provider: provider, StatusCode: status, Body: string(body)}
	switch {
	case status == http.StatusTooManyRequests:
		e.kind = ErrRateLimited
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		e.kind = ErrAuth
	case status == http.StatusBadRequest && isInvalidKey(string(body)):
		e.kind = ErrAuth
	case strings.Contains(string(body), "RESOURCE_EXHAUSTED"):
		e.kind = ErrRateLimited
	}
	return e
}

// Gemini reports a bad key as 400 INVALID_ARGUMENT with reason API_KEY_INVALID.
func isInvalidKey(body string) bool {
	return strings.Contains(body, "API_KEY_INVALID") || strings.Contains(body, "API key not valid")
}
