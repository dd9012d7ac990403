// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package draft

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/riwayati/internal/core/novel"
	requestutil "github.com/taibuivan/riwayati/internal/platform/request"
	"github.com/taibuivan/riwayati/internal/platform/respond"
)

// Handler serves the chapter drafting endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts POST /chapters/{chapterID}/draft on a router scoped at /api.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Post("/chapters/{"+novel.ParamChapterID+"}/draft", handler.generate)
}

func (handler *Handler) generate(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, novel.ParamChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Request
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	content, err := handler.service.Generate(request.Context(), chapterID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, Response{Content: content})
}
