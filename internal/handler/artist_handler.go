package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-music-api/internal/middleware"
	"go-music-api/internal/model"
	"go-music-api/internal/service"
	"go-music-api/pkg/apierror"
)

type ArtistHandler struct {
	catalog *service.CatalogService
	library *service.LibraryService
}

func NewArtistHandler(catalog *service.CatalogService, library *service.LibraryService) *ArtistHandler {
	return &ArtistHandler{catalog: catalog, library: library}
}

func (h *ArtistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, _ := middleware.UserIDFromContext(r.Context())

	artist, err := h.catalog.GetArtist(r.Context(), id, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	if artist == nil {
		writeNotFound(w, "artist", id)
		return
	}

	writeSuccess(w, http.StatusOK, artist, nil)
}

func (h *ArtistHandler) Albums(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.catalog.GetArtistAlbums(r.Context(), id, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if page == nil {
		writeNotFound(w, "artist", id)
		return
	}

	writeSuccess(w, http.StatusOK, page.Items, &model.Meta{
		Limit:  page.Limit,
		Offset: page.Offset,
		Total:  page.Total,
	})
}

func (h *ArtistHandler) SetLike(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, apierror.Unauthorized("authentication required"))
		return
	}

	like, err := h.library.SetLike(r.Context(), userID, id, model.LikeKindArtist)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, model.LikeResponse{ID: like.ID}, nil)
}
