package provider

import (
	"context"
	"errors"
	"io"
	"math"
	"net/http"

	"github.com/sashabaranov/go-openai"
)

type openAIStreamer struct {
	baseURL    string
	httpClient *http.Client
}

func (s *openAIStreamer) Stream(ctx context.Context, req Request, emit func(string) error) error {
	cfg := openai.DefaultConfig(req.APIKey)
	if s.baseURL != "" {
		cfg.BaseURL = s.baseURL
	}
	if s.httpClient != nil {
		cfg.HTTPClient = s.httpClient
	}
	client := openai.NewClientWithConfig(cfg)

	msgs := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		msgs = append(msgs, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	creq := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: msgs,
		Stream:   true,
	}
	if req.Temperature != nil {
		creq.Temperature = *req.Temperature
		// go-openai membuang temperature 0 (omitempty); nilai terkecil ini tetap terkirim.
		if creq.Temperature == 0 {
			creq.Temperature = math.SmallestNonzeroFloat32
		}
	}
	if req.MaxTokens != nil {
		creq.MaxTokens = *req.MaxTokens
	}

	stream, err := client.CreateChatCompletionStream(ctx, creq)
	if err != nil {
		return err
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			continue
		}
		if chunk := resp.Choices[0].Delta.Content; chunk != "" {
			if err := emit(chunk); err != nil {
				return err
			}
		}
	}
}
