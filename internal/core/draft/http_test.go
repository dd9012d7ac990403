// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestHandler_Generate maps service outcomes to HTTP responses.
*/
func TestHandler_Generate(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantBody   map[string]any
	}{
		{"ok", "/api/chapters/7/draft", `{"title":"t","content":"one two three"}`, http.StatusOK, map[string]any{"content": "generated"}},
		{"too_short", "/api/chapters/7/draft", `{"title":"t","content":"one two"}`, http.StatusUnprocessableEntity, map[string]any{"code": "UNPROCESSABLE"}},
		{"missing_chapter", "/api/chapters/99/draft", `{"title":"t","content":"one two three"}`, http.StatusNotFound, map[string]any{"code": "NOT_FOUND"}},
		{"bad_id", "/api/chapters/x/draft", `{}`, http.StatusBadRequest, map[string]any{"code": "VALIDATION_ERROR"}},
		{"bad_json", "/api/chapters/7/draft", `{`, http.StatusBadRequest, map[string]any{"code": "VALIDATION_ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&fakeGenerator{reply: "generated"}, NewMemoryLocker())
			router := chi.NewRouter()
			router.Route("/api", NewHandler(service).RegisterRoutes)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, recorder.Code)

			var payload map[string]any
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
			for key, want := range tt.wantBody {
				assert.Equal(t, want, payload[key], key)
			}
		})
	}
}
