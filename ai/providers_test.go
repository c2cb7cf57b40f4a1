package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func serve(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

// ==================== OpenAI ====================

func TestOpenAI_Complete(t *testing.T) {
	var req chatRequest
	url := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &req))
		io.WriteString(w, `{"choices":[{"message":{"content":"SELECT * FROM STUDENT;"},"finish_reason":"stop"}]}`)
	})

	o := NewOpenAI("sk-test", "")
	o.baseURL = url

	text, err := o.Complete(context.Background(), SQLPrompt, "list everyone")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM STUDENT;", text)

	assert.Equal(t, "gpt-4o", req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "system", req.Messages[0].Role)
	assert.Equal(t, SQLPrompt, req.Messages[0].Content)
	assert.Equal(t, "user", req.Messages[1].Role)
	assert.Equal(t, "list everyone", req.Messages[1].Content)
}

func TestOpenAI_Errors(t *testing.T) {
	t.Run("unauthorized", func(t *testing.T) {
		url := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":{"message":"Incorrect API key provided"}}`)
		})
		o := NewOpenAI("bad", "gpt-4o")
		o.baseURL = url

		_, err := o.Complete(context.Background(), SQLPrompt, "q")
		assert.ErrorIs(t, err, ErrAuth)
	})

	t.Run("content filter", func(t *testing.T) {
		url := serve(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"choices":[{"message":{"content":""},"finish_reason":"content_filter"}]}`)
		})
		o := NewOpenAI("k", "gpt-4o")
		o.baseURL = url

		_, err := o.Complete(context.Background(), SQLPrompt, "q")
		var blocked *BlockedError
		require.True(t, errors.As(err, &blocked))
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})

	t.Run("no choices", func(t *testing.T) {
		url := serve(t, func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, `{"choices":[]}`)
		})
		o := NewOpenAI("k", "gpt-4o")
		o.baseURL = url

		_, err := o.Complete(context.Background(), SQLPrompt, "q")
		assert.ErrorIs(t, err, ErrEmptyCompletion)
	})
}

// ==================== Ollama ====================

func TestOllama_Complete(t *testing.T) {
	var req struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
		Stream bool   `json:"stream"`
	}
	url := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &req))
		io.WriteString(w, `{"response":"`+"```sql\\nSELECT NAME FROM STUDENT;\\n```"+`","done":true}`)
	})

	o := NewOllama(url+"/", "qwen")
	text, err := o.Complete(context.Background(), SQLPrompt, "names?")
	require.NoError(t, err)
	assert.Equal(t, "SELECT NAME FROM STUDENT;", ExtractSQL(text))
	assert.Equal(t, "qwen", req.Model)
	assert.False(t, req.Stream)
	assert.Equal(t, RenderPrompt("names?"), req.Prompt)
	assert.Equal(t, "Ollama (qwen)", o.Name())
}

func TestOllama_EmptyResponse(t *testing.T) {
	url := serve(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"response":"  ","done":true}`)
	})

	_, err := NewOllama(url, "qwen").Complete(context.Background(), SQLPrompt, "q")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestOllama_Unreachable(t *testing.T) {
	o := NewOllama("http://127.0.0.1:1", "llama3.2")
	_, err := o.Complete(context.Background(), SQLPrompt, "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is Ollama running")
}

// ==================== Anthropic ====================

func TestAnthropic_Complete(t *testing.T) {
	var body map[string]any
	url := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ak-test", r.Header.Get("X-Api-Key"))
		data, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(data, &body))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "msg_01",
			"type": "message",
			"role": "assistant",
			"model": "claude-test",
			"content": [{"type": "text", "text": "SELECT AVG(MARKS) FROM STUDENT;"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`)
	})

	a := NewAnthropic("ak-test", "claude-test", option.WithBaseURL(url))
	text, err := a.Complete(context.Background(), SQLPrompt, "average marks?")
	require.NoError(t, err)
	assert.Equal(t, "SELECT AVG(MARKS) FROM STUDENT;", text)

	assert.Equal(t, "claude-test", body["model"])
	system := body["system"].([]any)
	require.Len(t, system, 1)
	assert.Equal(t, SQLPrompt, system[0].(map[string]any)["text"])
}

func TestAnthropic_RateLimitIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	url := serve(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"type":"error","error":{"type":"rate_limit_error","message":"slow down"}}`)
	})

	a := NewAnthropic("ak-test", "claude-test", option.WithBaseURL(url))
	_, err := a.Complete(context.Background(), SQLPrompt, "q")
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, int32(1), calls.Load())
}

// ==================== Placeholder ====================

func TestPlaceholder_Shapes(t *testing.T) {
	p := &Placeholder{}
	tests := map[string]string{
		"How many students are there in total?":                         "SELECT COUNT(*) FROM STUDENT;",
		"Show me all the students in section A.":                        "SELECT * FROM STUDENT WHERE SECTION = 'A';",
		"What are the names of students who scored more than 80 marks?": "SELECT NAME FROM STUDENT WHERE MARKS > 80;",
		"How many students in 10th class scored below 90?":              "SELECT COUNT(*) FROM STUDENT WHERE CLASS = '10th' AND MARKS < 90;",
		"Who has the highest marks?":                                    "SELECT * FROM STUDENT ORDER BY MARKS DESC LIMIT 1;",
		"What is the average of section b?":                             "SELECT AVG(MARKS) FROM STUDENT WHERE SECTION = 'B';",
	}
	for question, want := range tests {
		text, err := p.Complete(context.Background(), SQLPrompt, question)
		require.NoError(t, err)
		assert.Equal(t, want, ExtractSQL(text), question)
	}
}

func TestPlaceholder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPlaceholder().Complete(ctx, SQLPrompt, "q")
	assert.ErrorIs(t, err, context.Canceled)
}
