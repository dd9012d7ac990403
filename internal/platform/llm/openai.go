// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	openAIBaseURL      = "https://api.openai.com/v1"
	openAIDefaultModel = "gpt-4o-mini"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

type chatError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// OpenAI calls an OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	http  *resty.Client
	model string
}

func newOpenAI(options Options) *OpenAI {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	model := options.Model
	if model == "" {
		model = openAIDefaultModel
	}

	client := newHTTPClient(baseURL, options.Timeout)
	if options.APIKey != "" {
		client.SetAuthToken(options.APIKey)
	}

	return &OpenAI{http: client, model: model}
}

func (o *OpenAI) Name() string  { return ProviderOpenAI }
func (o *OpenAI) Model() string { return o.model }

// Generate sends prompt as a single user message and returns the first choice.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	var (
		result  chatResponse
		failure chatError
	)

	response, err := o.http.R().
		SetContext(ctx).
		SetBody(chatRequest{Model: o.model, Messages: []chatMessage{{Role: "user", Content: prompt}}}).
		SetResult(&result).
		SetError(&failure).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("llm: openai request failed: %w", err)
	}

	if response.IsError() {
		return "", &StatusError{Provider: ProviderOpenAI, Status: response.StatusCode(), Message: failure.Error.Message}
	}

	if len(result.Choices) == 0 || strings.TrimSpace(result.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	return result.Choices[0].Message.Content, nil
}
