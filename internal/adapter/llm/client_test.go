package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

// fakeCompletions serves an OpenAI-compatible chat completions endpoint,
// capturing the request and answering with reply.
func fakeCompletions(t *testing.T, reply string, captured *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(captured))

		w.Header().Set("Content-Type", "application/json")
		body, err := sonic.Marshal(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"model":  captured.Model,
			"choices": []map[string]any{
				{
					"index":         0,
					"finish_reason": "stop",
					"message":       map[string]string{"role": "assistant", "content": reply},
				},
			},
		})
		require.NoError(t, err)
		w.Write(body)
	}))
}

func TestGenerateSuccess(t *testing.T) {
	var got chatRequest
	server := fakeCompletions(t, "hi there", &got)
	defer server.Close()

	client := NewClient(server.URL+"/v1", "test-key", "gemini-2.5-flash", time.Second)
	reply, err := client.Generate(context.Background(), "hello", nil)

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, "gemini-2.5-flash", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.True(t, strings.HasPrefix(got.Messages[0].Content, "hello"), "prompt comes first")
	assert.Contains(t, got.Messages[0].Content, "concise response", "brevity instruction is appended")
}

func TestGenerateMapsHistoryRoles(t *testing.T) {
	var got chatRequest
	server := fakeCompletions(t, "sure", &got)
	defer server.Close()

	client := NewClient(server.URL+"/v1", "test-key", "gemini-2.5-flash", time.Second)
	history := []domain.ConversationMessage{
		{Role: domain.RoleUser, Content: "what's 2+2?"},
		{Role: domain.RoleAssistant, Content: "4"},
	}
	_, err := client.Generate(context.Background(), "and doubled?", history)

	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "what's 2+2?", got.Messages[0].Content)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	assert.Equal(t, "4", got.Messages[1].Content)
	assert.Equal(t, "user", got.Messages[2].Role)
}

func TestGenerateEmptyResponse(t *testing.T) {
	var got chatRequest
	server := fakeCompletions(t, "", &got)
	defer server.Close()

	client := NewClient(server.URL+"/v1", "test-key", "gemini-2.5-flash", time.Second)
	_, err := client.Generate(context.Background(), "hello", nil)

	assert.ErrorContains(t, err, "empty response")
}

func TestGenerateProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"message": "quota exceeded"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/v1", "test-key", "gemini-2.5-flash", time.Second)
	_, err := client.Generate(context.Background(), "hello", nil)

	assert.ErrorContains(t, err, "completion failed")
}

func TestGenerateUnconfigured(t *testing.T) {
	client := NewClient("", "", "gemini-2.5-flash", time.Second)
	_, err := client.Generate(context.Background(), "hello", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
