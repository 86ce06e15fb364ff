package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-music-api/internal/middleware"
	"go-music-api/internal/model"
	"go-music-api/internal/service"
	"go-music-api/pkg/apierror"
)

type TrackHandler struct {
	catalog *service.CatalogService
	library *service.LibraryService
}

func NewTrackHandler(catalog *service.CatalogService, library *service.LibraryService) *TrackHandler {
	return &TrackHandler{catalog: catalog, library: library}
}

func (h *TrackHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, _ := middleware.UserIDFromContext(r.Context())

	track, err := h.catalog.GetTrack(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if track == nil {
		writeNotFound(w, "track", id)
		return
	}

	writeSuccess(w, http.StatusOK, track, nil)
}

func (h *TrackHandler) SetLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	like, err := h.library.SetLike(r.Context(), userID, id, model.LikeKindTrack)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.LikeResponse{ID: like.ID}, nil)
}
