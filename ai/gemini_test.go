package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	g := NewGemini("test-key", "gemini-test")
	g.baseURL = srv.URL
	return g
}

func TestGemini_Complete(t *testing.T) {
	var gotBody map[string]any
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &gotBody))

		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"`+"```sql\\n"+`SELECT COUNT(*) "},{"text":"FROM STUDENT;\n`+"```"+`"}]},"finishReason":"STOP"}]}`)
	})

	text, err := g.Complete(context.Background(), SQLPrompt, "How many students are there in total?")
	require.NoError(t, err)
	assert.Equal(t, "```sql\nSELECT COUNT(*) FROM STUDENT;\n```", text)

	// Prompt and question travel as two parts of one user turn.
	contents := gotBody["contents"].([]any)
	require.Len(t, contents, 1)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, SQLPrompt, parts[0].(map[string]any)["text"])
	assert.Equal(t, "How many students are there in total?", parts[1].(map[string]any)["text"])
}

func TestGemini_ErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rate limit", http.StatusTooManyRequests, `{"error":{"status":"RESOURCE_EXHAUSTED"}}`, ErrRateLimited},
		{"invalid key", http.StatusBadRequest, `{"error":{"message":"API key not valid. Please pass a valid API key.","details":[{"reason":"API_KEY_INVALID"}]}}`, ErrAuth},
		{"forbidden", http.StatusForbidden, `{"error":{"status":"PERMISSION_DENIED"}}`, ErrAuth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			_, err := g.Complete(context.Background(), SQLPrompt, "q")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestGemini_GenericAPIError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"error":{"message":"models/nope is not found"}}`)
	})

	_, err := g.Complete(context.Background(), SQLPrompt, "q")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.NotErrorIs(t, err, ErrRateLimited)
	assert.NotErrorIs(t, err, ErrAuth)
	assert.Contains(t, err.Error(), "not found")
}

func TestGemini_BlockedPrompt(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"promptFeedback":{"blockReason":"SAFETY"}}`)
	})

	_, err := g.Complete(context.Background(), SQLPrompt, "q")
	require.ErrorIs(t, err, ErrEmptyCompletion)

	var blocked *BlockedError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, "SAFETY", blocked.Reason)
}

func TestGemini_CandidateWithoutParts(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[{"content":{},"finishReason":"RECITATION"}]}`)
	})

	_, err := g.Complete(context.Background(), SQLPrompt, "q")
	var blocked *BlockedError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, "RECITATION", blocked.Reason)
}

func TestGemini_EmptyText(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"  "}]},"finishReason":"STOP"}]}`)
	})

	_, err := g.Complete(context.Background(), SQLPrompt, "q")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGemini_NoCandidates(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{}`)
	})

	_, err := g.Complete(context.Background(), SQLPrompt, "q")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestGemini_ContextDeadline(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := g.Complete(ctx, SQLPrompt, "q")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGemini_Name(t *testing.T) {
	assert.Equal(t, "Gemini (gemini-2.5-pro)", NewGemini("k", "").Name())
}
