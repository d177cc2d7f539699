package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sseServer(t *testing.T, check func(r *http.Request, body []byte), events ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if check != nil {
			check(r, body)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		for _, ev := range events {
			fmt.Fprintf(w, "%s\n\n", ev)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func collect(t *testing.T, s Streamer, req Request) (string, error) {
	t.Helper()
	var sb strings.Builder
	err := s.Stream(context.Background(), req, func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	})
	return sb.String(), err
}

var convo = []Message{
	{Role: RoleSystem, Content: "Kamu analis CSR."},
	{Role: RoleUser, Content: "Halo"},
	{Role: RoleAssistant, Content: "Halo juga"},
	{Role: RoleUser, Content: "Program mana yang berisiko?"},
}

func TestOpenAIStreamer(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := sseServer(t, func(r *http.Request, body []byte) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.Unmarshal(body, &gotBody))
	},
		`data: {"id":"c1","object":"chat.completion.chunk","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"delta":{"role":"assistant","content":"Program "}}]}`,
		`data: {"id":"c1","object":"chat.completion.chunk","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"delta":{"content":"A"}}]}`,
		`data: [DONE]`,
	)

	s, err := Config{OpenAIBaseURL: srv.URL + "/v1", HTTPClient: srv.Client()}.For("openai")
	require.NoError(t, err)

	out, err := collect(t, s, Request{Model: "gpt-4o-mini", APIKey: "sk-test", Messages: convo})
	require.NoError(t, err)
	assert.Equal(t, "Program A", out)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, true, gotBody["stream"])
	assert.Len(t, gotBody["messages"], 4)
}

func TestOpenAIStreamer_SendsZeroTemperature(t *testing.T) {
	var gotBody map[string]any
	srv := sseServer(t, func(r *http.Request, body []byte) {
		require.NoError(t, json.Unmarshal(body, &gotBody))
	},
		`data: {"id":"c1","object":"chat.completion.chunk","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"delta":{"content":"ok"}}]}`,
		`data: [DONE]`,
	)
	s, err := Config{OpenAIBaseURL: srv.URL + "/v1", HTTPClient: srv.Client()}.For("OPENAI")
	require.NoError(t, err)

	zero, maxTok := float32(0), 256
	_, err = collect(t, s, Request{Model: "gpt-4o-mini", APIKey: "sk-test", Messages: convo, Temperature: &zero, MaxTokens: &maxTok})
	require.NoError(t, err)

	temp, ok := gotBody["temperature"].(float64)
	require.True(t, ok, "temperature harus ada di body")
	assert.InDelta(t, 0, temp, 1e-6)
	assert.EqualValues(t, 256, gotBody["max_tokens"])

	gotBody = nil
	_, err = collect(t, s, Request{Model: "gpt-4o-mini", APIKey: "sk-test", Messages: convo})
	require.NoError(t, err)
	_, present := gotBody["temperature"]
	assert.False(t, present)
}

func TestAnthropicStreamer(t *testing.T) {
	var got anthropicRequest
	srv := sseServer(t, func(r *http.Request, body []byte) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.Unmarshal(body, &got))
	},
		"event: message_start\ndata: {\"type\":\"message_start\",\"message\":{\"id\":\"m1\"}}",
		"event: content_block_delta\ndata: {\"type\":\"content_block_delta\",\"index\":0,\"delta\":{\"type\":\"text_delta\",\"text\":\"Dua \"}}",
		"event: ping\ndata: {\"type\":\"ping\"}",
		"event: content_block_delta\ndata: {\"type\":\"content_block_delta\",\"index\":0,\"delta\":{\"type\":\"text_delta\",\"text\":\"program\"}}",
		"event: message_stop\ndata: {\"type\":\"message_stop\"}",
	)

	s, err := Config{AnthropicBaseURL: srv.URL, HTTPClient: srv.Client()}.For("ANTHROPIC")
	require.NoError(t, err)

	out, err := collect(t, s, Request{Model: "claude-3-5-haiku-latest", APIKey: "sk-ant", Messages: convo})
	require.NoError(t, err)
	assert.Equal(t, "Dua program", out)
	assert.Equal(t, "Kamu analis CSR.", got.System)
	assert.Len(t, got.Messages, 3)
	assert.True(t, got.Stream)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
}

func TestAnthropicStreamer_ErrorEvent(t *testing.T) {
	srv := sseServer(t, nil,
		"event: error\ndata: {\"type\":\"error\",\"error\":{\"type\":\"overloaded_error\",\"message\":\"Overloaded\"}}",
	)
	s, _ := Config{AnthropicBaseURL: srv.URL, HTTPClient: srv.Client()}.For("ANTHROPIC")
	_, err := collect(t, s, Request{Model: "m", APIKey: "k", Messages: convo})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Overloaded")
}

func TestGeminiStreamer(t *testing.T) {
	var got geminiRequest
	srv := sseServer(t, func(r *http.Request, body []byte) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:streamGenerateContent", r.URL.Path)
		assert.Equal(t, "sse", r.URL.Query().Get("alt"))
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.Unmarshal(body, &got))
	},
		`data: {"candidates":[{"content":{"role":"model","parts":[{"text":"Tiga "}]}}]}`,
		`data: {"candidates":[{"content":{"role":"model","parts":[{"text":"program"}]}}]}`,
	)

	s, err := Config{GeminiBaseURL: srv.URL, HTTPClient: srv.Client()}.For("GEMINI")
	require.NoError(t, err)

	out, err := collect(t, s, Request{Model: "gemini-1.5-flash", APIKey: "g-key", Messages: convo})
	require.NoError(t, err)
	assert.Equal(t, "Tiga program", out)
	require.NotNil(t, got.SystemInstruction)
	require.Len(t, got.Contents, 3)
	assert.Equal(t, "model", got.Contents[1].Role)
	assert.Nil(t, got.GenerationConfig)
}

func TestStreamer_HTTPErrorAndEmitError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s, _ := Config{GeminiBaseURL: srv.URL, HTTPClient: srv.Client()}.For("GEMINI")
	_, err := collect(t, s, Request{Model: "m", APIKey: "bad", Messages: convo})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	ok := sseServer(t, nil,
		`data: {"candidates":[{"content":{"parts":[{"text":"a"}]}}]}`,
		`data: {"candidates":[{"content":{"parts":[{"text":"b"}]}}]}`,
	)
	s, _ = Config{GeminiBaseURL: ok.URL, HTTPClient: ok.Client()}.For("GEMINI")
	gone := errors.New("client gone")
	calls := 0
	err = s.Stream(context.Background(), Request{Model: "m", Messages: convo}, func(string) error {
		calls++
		return gone
	})
	assert.ErrorIs(t, err, gone)
	assert.Equal(t, 1, calls)
}

func TestFor_Unsupported(t *testing.T) {
	_, err := Config{}.For("COHERE")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}
