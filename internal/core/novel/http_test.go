// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter() (http.Handler, *memoryRepository) {
	service, repo := newTestService()
	router := chi.NewRouter()
	router.Route("/api", NewHandler(service).RegisterRoutes)
	return router, repo
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var payload map[string]any
	if strings.HasPrefix(strings.TrimSpace(recorder.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	}
	return recorder, payload
}

/*
TestHandler_Scenario walks the create → write → read path through HTTP.
*/
func TestHandler_Scenario(t *testing.T) {
	router, _ := newTestRouter()

	// 1. Create novel
	recorder, payload := doRequest(t, router, http.MethodPost, "/api/novels", `{"title":"A","author":"B"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, float64(1), payload["id"])

	// 2. Create chapter
	recorder, payload = doRequest(t, router, http.MethodPost, "/api/novels/1/chapters", `{"title":"Ch1","content":"","order_index":1}`)
	require.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, float64(1), payload["id"])

	// 3. Overwrite chapter
	recorder, payload = doRequest(t, router, http.MethodPut, "/api/chapters/1", `{"title":"Ch1","content":"hello"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, true, payload["success"])

	// 4. Detail view
	recorder, payload = doRequest(t, router, http.MethodGet, "/api/novels/1", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "A", payload["title"])
	assert.Equal(t, "B", payload["author"])
	assert.Nil(t, payload["description"])

	chapters, ok := payload["chapters"].([]any)
	require.True(t, ok)
	require.Len(t, chapters, 1)
	chapter := chapters[0].(map[string]any)
	assert.Equal(t, "Ch1", chapter["title"])
	assert.Equal(t, "hello", chapter["content"])
	assert.Equal(t, float64(1), chapter["order_index"])

	// 5. List view never carries chapters
	recorder = httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/novels", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "chapters")
}

/*
TestHandler_EmptyList verifies an empty library serializes as [] not null.
*/
func TestHandler_EmptyList(t *testing.T) {
	router, _ := newTestRouter()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/novels", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, recorder.Body.String())
}

/*
TestHandler_Errors maps failures to status codes and error codes.
*/
func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"non_numeric_id", http.MethodGet, "/api/novels/abc", "", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing_novel", http.MethodGet, "/api/novels/99", "", http.StatusNotFound, "NOT_FOUND"},
		{"missing_chapter", http.MethodGet, "/api/chapters/99", "", http.StatusNotFound, "NOT_FOUND"},
		{"update_missing_chapter", http.MethodPut, "/api/chapters/99", `{"title":"t","content":""}`, http.StatusNotFound, "NOT_FOUND"},
		{"chapter_under_missing_novel", http.MethodPost, "/api/novels/99/chapters", `{"title":"t","content":"","order_index":1}`, http.StatusNotFound, "NOT_FOUND"},
		{"malformed_json", http.MethodPost, "/api/novels", `{"title":`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"missing_title", http.MethodPost, "/api/novels", `{"author":"x"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newTestRouter()

			recorder, payload := doRequest(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCode, payload["code"])
			assert.NotEmpty(t, payload["error"])
		})
	}
}

/*
TestHandler_DeleteIsIdempotent verifies changes is reported and repeats are harmless.
*/
func TestHandler_DeleteIsIdempotent(t *testing.T) {
	router, _ := newTestRouter()

	doRequest(t, router, http.MethodPost, "/api/novels", `{"title":"A"}`)
	doRequest(t, router, http.MethodPost, "/api/novels/1/chapters", `{"title":"C","content":""}`)

	// 1. Chapter delete
	_, payload := doRequest(t, router, http.MethodDelete, "/api/chapters/1", "")
	assert.Equal(t, map[string]any{"success": true, "changes": float64(1)}, payload)

	_, payload = doRequest(t, router, http.MethodDelete, "/api/chapters/1", "")
	assert.Equal(t, map[string]any{"success": true, "changes": float64(0)}, payload)

	// 2. Novel delete
	_, payload = doRequest(t, router, http.MethodDelete, "/api/novels/1", "")
	assert.Equal(t, map[string]any{"success": true, "changes": float64(1)}, payload)

	recorder, _ := doRequest(t, router, http.MethodGet, "/api/novels/1", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHandler_InternalErrorHidesCause verifies store errors become a generic 500.
*/
func TestHandler_InternalErrorHidesCause(t *testing.T) {
	router, repo := newTestRouter()
	repo.failWith = errors.New("SQLITE_BUSY: database is locked")

	recorder, payload := doRequest(t, router, http.MethodPost, "/api/novels", `{"title":"A"}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "INTERNAL_ERROR", payload["code"])
	assert.NotContains(t, recorder.Body.String(), "SQLITE_BUSY")
}
