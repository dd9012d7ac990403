// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package llm talks to hosted text-generation providers.

Each provider is a plain text-in/text-out collaborator: one prompt goes in,
one completion comes out. No streaming, no tool calls, no retries. Callers
decide what to do with a failure.

Supported providers:

  - gemini: Google Generative Language API (models/{model}:generateContent).
  - openai: any OpenAI-compatible /chat/completions endpoint.
*/
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Provider names accepted by [New].
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

const defaultTimeout = 120 * time.Second

var (
	// ErrEmptyResponse is returned when the provider answered but produced no text.
	ErrEmptyResponse = errors.New("llm: provider returned no text")

	// ErrUnknownProvider is returned by [New] for an unsupported provider name.
	ErrUnknownProvider = errors.New("llm: unknown provider")
)

// Provider generates a completion for a single prompt.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)

	// Name is the provider identifier used in logs and metric labels.
	Name() string

	// Model is the upstream model the provider calls.
	Model() string
}

// Options configures a [Provider]. Zero values fall back to provider defaults.
type Options struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// StatusError reports a non-2xx answer from the provider.
type StatusError struct {
	Provider string
	Status   int
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("llm: %s responded with status %d", e.Provider, e.Status)
	}
	return fmt.Sprintf("llm: %s responded with status %d: %s", e.Provider, e.Status, e.Message)
}

// New builds the provider named in options.
func New(options Options) (Provider, error) {
	if options.Timeout <= 0 {
		options.Timeout = defaultTimeout
	}

	switch options.Provider {
	case ProviderGemini, "":
		return newGemini(options), nil
	case ProviderOpenAI:
		return newOpenAI(options), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, options.Provider)
	}
}

// newHTTPClient returns the resty client shared by every provider request.
func newHTTPClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetLogger(discardLogger{}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}

// discardLogger silences resty's own warnings; failures surface as errors.
type discardLogger struct{}

func (discardLogger) Errorf(string, ...any) {}
func (discardLogger) Warnf(string, ...any)  {}
func (discardLogger) Debugf(string, ...any) {}
