// Package provider berisi klien streaming untuk OPENAI, ANTHROPIC dan GEMINI.
// Semua provider menormalkan potongan respons menjadi teks biasa lewat callback emit.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"

	defaultMaxTokens = 1024
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string
	APIKey      string
	Messages    []Message
	Temperature *float32
	MaxTokens   *int
}

// Streamer mengirim request ke provider dan memanggil emit untuk setiap potongan teks.
// Error dari emit menghentikan stream dan dikembalikan apa adanya.
type Streamer interface {
	Stream(ctx context.Context, req Request, emit func(chunk string) error) error
}

var ErrUnsupportedProvider = errors.New("provider AI tidak didukung")

// Config: base URL bisa dioverride (proxy / test).
type Config struct {
	OpenAIBaseURL    string
	AnthropicBaseURL string
	GeminiBaseURL    string
	HTTPClient       *http.Client
}

func ConfigFromEnv() Config {
	// timeout total diatur lewat context per request
	client := &http.Client{Transport: &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		ResponseHeaderTimeout: 60 * time.Second,
		IdleConnTimeout:       90 * time.Second,
	}}
	return Config{
		OpenAIBaseURL:    strings.TrimSpace(os.Getenv("OPENAI_BASE_URL")),
		AnthropicBaseURL: strings.TrimSpace(os.Getenv("ANTHROPIC_BASE_URL")),
		GeminiBaseURL:    strings.TrimSpace(os.Getenv("GEMINI_BASE_URL")),
		HTTPClient:       client,
	}
}

func (c Config) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// For mengembalikan Streamer untuk nama provider (OPENAI | ANTHROPIC | GEMINI).
func (c Config) For(name string) (Streamer, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "OPENAI":
		return &openAIStreamer{baseURL: c.OpenAIBaseURL, httpClient: c.client()}, nil
	case "ANTHROPIC":
		return &anthropicStreamer{baseURL: orDefault(c.AnthropicBaseURL, anthropicDefaultBaseURL), httpClient: c.client()}, nil
	case "GEMINI":
		return &geminiStreamer{baseURL: orDefault(c.GeminiBaseURL, geminiDefaultBaseURL), httpClient: c.client()}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, name)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return strings.TrimRight(v, "/")
}

// splitSystem memisahkan pesan system dari percakapan (Anthropic & Gemini menaruhnya terpisah).
func splitSystem(msgs []Message) (string, []Message) {
	var sys []string
	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == RoleSystem {
			sys = append(sys, m.Content)
			continue
		}
		out = append(out, m)
	}
	return strings.Join(sys, "\n\n"), out
}

// statusError membaca sebagian body error agar pesan provider ikut tercatat.
func statusError(provider string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	return fmt.Errorf("%s status %d: %s", provider, resp.StatusCode, strings.TrimSpace(string(body)))
}
