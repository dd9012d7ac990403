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
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel = "gemini-3-flash-preview"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Gemini calls the generateContent method of the Generative Language API.
type Gemini struct {
	http  *resty.Client
	model string
}

func newGemini(options Options) *Gemini {
	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = geminiBaseURL
	}
	model := options.Model
	if model == "" {
		model = geminiDefaultModel
	}

	client := newHTTPClient(baseURL, options.Timeout)
	if options.APIKey != "" {
		client.SetHeader("x-goog-api-key", options.APIKey)
	}

	return &Gemini{http: client, model: model}
}

func (g *Gemini) Name() string  { return ProviderGemini }
func (g *Gemini) Model() string { return g.model }

// Generate sends prompt as a single user turn and joins the text parts of the
// first candidate.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	var (
		result  geminiResponse
		failure geminiError
	)

	response, err := g.http.R().
		SetContext(ctx).
		SetPathParam("model", g.model).
		SetBody(geminiRequest{Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}}).
		SetResult(&result).
		SetError(&failure).
		Post("/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("llm: gemini request failed: %w", err)
	}

	if response.IsError() {
		return "", &StatusError{Provider: ProviderGemini, Status: response.StatusCode(), Message: failure.Error.Message}
	}

	if len(result.Candidates) == 0 {
		if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w (blocked: %s)", ErrEmptyResponse, result.PromptFeedback.BlockReason)
		}
		return "", ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}

	return text.String(), nil
}
