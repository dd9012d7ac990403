// Copyright (c) 2026 Riwayati. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package novel

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/riwayati/internal/platform/request"
	"github.com/taibuivan/riwayati/internal/platform/respond"
)

// URL parameter names.
const (
	ParamNovelID   = "novelID"
	ParamChapterID = "chapterID"
)

// CreatedResponse acknowledges a create with the store-assigned ID.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// DeletedResponse acknowledges a delete. Changes is 0 when nothing matched.
type DeletedResponse struct {
	Success bool  `json:"success"`
	Changes int64 `json:"changes"`
}

// UpdatedResponse acknowledges a full overwrite.
type UpdatedResponse struct {
	Success bool `json:"success"`
}

// Handler serves the novel and chapter endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the endpoints on a router scoped at /api.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/novels", handler.listNovels)
	router.Post("/novels", handler.createNovel)
	router.Get("/novels/{"+ParamNovelID+"}", handler.getNovel)
	router.Delete("/novels/{"+ParamNovelID+"}", handler.deleteNovel)
	router.Post("/novels/{"+ParamNovelID+"}/chapters", handler.createChapter)

	router.Get("/chapters/{"+ParamChapterID+"}", handler.getChapter)
	router.Put("/chapters/{"+ParamChapterID+"}", handler.updateChapter)
	router.Delete("/chapters/{"+ParamChapterID+"}", handler.deleteChapter)
}

// # Novels

func (handler *Handler) listNovels(writer http.ResponseWriter, request *http.Request) {
	novels, err := handler.service.ListNovels(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, novels)
}

func (handler *Handler) createNovel(writer http.ResponseWriter, request *http.Request) {
	var input CreateNovelInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	novel, err := handler.service.CreateNovel(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, CreatedResponse{ID: novel.ID})
}

func (handler *Handler) getNovel(writer http.ResponseWriter, request *http.Request) {
	novelID, err := requestutil.ID(request, ParamNovelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.GetNovel(request.Context(), novelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) deleteNovel(writer http.ResponseWriter, request *http.Request) {
	novelID, err := requestutil.ID(request, ParamNovelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	changes, err := handler.service.DeleteNovel(request.Context(), novelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, DeletedResponse{Success: true, Changes: changes})
}

// # Chapters

func (handler *Handler) createChapter(writer http.ResponseWriter, request *http.Request) {
	novelID, err := requestutil.ID(request, ParamNovelID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateChapterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.CreateChapter(request.Context(), novelID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, CreatedResponse{ID: chapter.ID})
}

func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, ParamChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapter, err := handler.service.GetChapter(request.Context(), chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, chapter)
}

func (handler *Handler) updateChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, ParamChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateChapterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateChapter(request.Context(), chapterID, input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, UpdatedResponse{Success: true})
}

func (handler *Handler) deleteChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID, err := requestutil.ID(request, ParamChapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	changes, err := handler.service.DeleteChapter(request.Context(), chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, DeletedResponse{Success: true, Changes: changes})
}
