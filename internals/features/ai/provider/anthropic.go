package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	anthropicDefaultBaseURL = "https://api.anthropic.com"
	anthropicVersion        = "2023-06-01"
)

type anthropicStreamer struct {
	baseURL    string
	httpClient *http.Client
}

type anthropicRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	System      string    `json:"system,omitempty"`
	Messages    []Message `json:"messages"`
	Temperature *float32  `json:"temperature,omitempty"`
	Stream      bool      `json:"stream"`
}

type anthropicEvent struct {
	Type  string `json:"type"`
	Delta struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"delta"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *anthropicStreamer) Stream(ctx context.Context, req Request, emit func(string) error) error {
	system, msgs := splitSystem(req.Messages)
	body := anthropicRequest{
		Model:       req.Model,
		MaxTokens:   defaultMaxTokens,
		System:      system,
		Messages:    msgs,
		Temperature: req.Temperature,
		Stream:      true,
	}
	if req.MaxTokens != nil && *req.MaxTokens > 0 {
		body.MaxTokens = *req.MaxTokens
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("anthropic encode: %w", err)
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("anthropic request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "text/event-stream")
	hreq.Header.Set("x-api-key", req.APIKey)
	hreq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := s.httpClient.Do(hreq)
	if err != nil {
		return fmt.Errorf("anthropic call: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusError("anthropic", resp)
	}

	return readSSE(resp.Body, func(data string) (bool, error) {
		var ev anthropicEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			return false, nil
		}
		switch ev.Type {
		case "content_block_delta":
			if ev.Delta.Type == "text_delta" && ev.Delta.Text != "" {
				return false, emit(ev.Delta.Text)
			}
		case "message_stop":
			return true, nil
		case "error":
			if ev.Error != nil {
				return true, fmt.Errorf("anthropic %s: %s", ev.Error.Type, ev.Error.Message)
			}
			return true, errors.New("anthropic stream error")
		}
		return false, nil
	})
}
