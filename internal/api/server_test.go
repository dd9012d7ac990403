// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/riwayati/internal/api"
	"github.com/taibuivan/riwayati/internal/api/apitest"
)

/*
TestRouter_EndToEnd drives the mounted API over a real socket.
*/
func TestRouter_EndToEnd(t *testing.T) {
	server := apitest.Start(t)

	post := func(path, body string) *http.Response {
		response, err := http.Post(server.URL+path, "application/json", strings.NewReader(body))
		require.NoError(t, err)
		t.Cleanup(func() { _ = response.Body.Close() })
		return response
	}

	// 1. Create novel and chapter
	assert.Equal(t, http.StatusCreated, post("/api/novels", `{"title":"A","author":"B"}`).StatusCode)
	assert.Equal(t, http.StatusCreated, post("/api/novels/1/chapters", `{"title":"Ch1","content":""}`).StatusCode)

	// 2. Draft goes through the generation group
	response := post("/api/chapters/1/draft", `{"title":"Ch1","content":"one two three"}`)
	require.Equal(t, http.StatusOK, response.StatusCode)

	var drafted map[string]string
	require.NoError(t, json.NewDecoder(response.Body).Decode(&drafted))
	assert.Equal(t, "generated chapter", drafted["content"])
	assert.Equal(t, 1, server.Generator.Calls())

	// 3. Request IDs are echoed
	assert.NotEmpty(t, response.Header.Get("X-Request-ID"))

	// 4. Metrics are exposed
	metricsResponse, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResponse.Body.Close()

	body, err := io.ReadAll(metricsResponse.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `riwayati_http_requests_total{method="POST",route="/api/novels",status="201"}`)
}

/*
TestHealthHandlers covers liveness and both readiness outcomes.
*/
func TestHealthHandlers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		deps       api.HealthDependencies
		wantStatus int
		wantState  string
	}{
		{
			name:       "ready",
			deps:       api.HealthDependencies{DatabaseName: "sqlite", CheckDatabase: func(context.Context) error { return nil }},
			wantStatus: http.StatusOK,
			wantState:  "ready",
		},
		{
			name: "redis_down",
			deps: api.HealthDependencies{
				DatabaseName:  "postgres",
				CheckDatabase: func(context.Context) error { return nil },
				CheckCache:    func(context.Context) error { return errors.New("connection refused") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "degraded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			liveness, readiness := api.NewHealthHandlers(tt.deps, logger)

			recorder := httptest.NewRecorder()
			liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, http.StatusOK, recorder.Code)

			recorder = httptest.NewRecorder()
			readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))
			assert.Equal(t, tt.wantStatus, recorder.Code)

			var payload map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
			assert.Equal(t, tt.wantState, payload["status"])
		})
	}
}
