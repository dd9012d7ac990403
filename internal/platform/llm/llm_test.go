// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/riwayati/internal/platform/llm"
)

/*
TestGemini_Generate verifies the request shape and text extraction.
*/
func TestGemini_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", request.URL.Path)
		assert.Equal(t, "secret", request.Header.Get("x-goog-api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Contains(t, body, "contents")

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"كان "},{"text":"يا ما كان"}]}}]}`))
	}))
	defer server.Close()

	provider, err := llm.New(llm.Options{Provider: llm.ProviderGemini, APIKey: "secret", BaseURL: server.URL, Model: "test-model"})
	require.NoError(t, err)

	text, err := provider.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "كان يا ما كان", text)
	assert.Equal(t, "gemini", provider.Name())
	assert.Equal(t, "test-model", provider.Model())
}

/*
TestGemini_Failures covers an error status and an empty candidate list.
*/
func TestGemini_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "status_error",
			status: http.StatusTooManyRequests,
			body:   `{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`,
			check: func(t *testing.T, err error) {
				var statusErr *llm.StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusTooManyRequests, statusErr.Status)
				assert.Equal(t, "quota exceeded", statusErr.Message)
			},
		},
		{
			name:   "blocked",
			status: http.StatusOK,
			body:   `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, llm.ErrEmptyResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(tt.status)
				_, _ = writer.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider, err := llm.New(llm.Options{BaseURL: server.URL})
			require.NoError(t, err)

			_, err = provider.Generate(context.Background(), "prompt")
			tt.check(t, err)
		})
	}
}

/*
TestOpenAI_Generate verifies bearer auth and the first-choice extraction.
*/
func TestOpenAI_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/chat/completions", request.URL.Path)
		assert.Equal(t, "Bearer sk-test", request.Header.Get("Authorization"))

		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "gpt-test", body.Model)
		require.Len(t, body.Messages, 1)
		assert.Equal(t, "hello", body.Messages[0].Content)

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"a chapter"}}]}`))
	}))
	defer server.Close()

	provider, err := llm.New(llm.Options{Provider: llm.ProviderOpenAI, APIKey: "sk-test", BaseURL: server.URL, Model: "gpt-test"})
	require.NoError(t, err)

	text, err := provider.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "a chapter", text)
}

/*
TestNew_UnknownProvider rejects unsupported names.
*/
func TestNew_UnknownProvider(t *testing.T) {
	_, err := llm.New(llm.Options{Provider: "markov"})
	assert.ErrorIs(t, err, llm.ErrUnknownProvider)
}
