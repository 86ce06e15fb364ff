package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-music-api/internal/middleware"
	"go-music-api/internal/model"
	"go-music-api/internal/service"
	"go-music-api/pkg/apierror"
)

type AlbumHandler struct {
	catalog *service.CatalogService
	library *service.LibraryService
}

func NewAlbumHandler(catalog *service.CatalogService, library *service.LibraryService) *AlbumHandler {
	return &AlbumHandler{catalog: catalog, library: library}
}

func (h *AlbumHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, _ := middleware.UserIDFromContext(r.Context())

	album, err := h.catalog.GetAlbum(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if album == nil {
		writeNotFound(w, "album", id)
		return
	}

	writeSuccess(w, http.StatusOK, album, nil)
}

func (h *AlbumHandler) Tracks(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := h.catalog.GetAlbumTracks(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if page == nil {
		writeNotFound(w, "album", id)
		return
	}

	writeSuccess(w, http.StatusOK, page, nil)
}

func (h *AlbumHandler) SetLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	like, err := h.library.SetLike(r.Context(), userID, id, model.LikeKindAlbum)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.LikeResponse{ID: like.ID}, nil)
}
