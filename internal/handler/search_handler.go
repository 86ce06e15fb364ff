package handler

import (
	"net/http"
	"strings"

	"go-music-api/internal/service"
	"go-music-api/pkg/apierror"
)

type SearchHandler struct {
	catalog *service.CatalogService
}

func NewSearchHandler(catalog *service.CatalogService) *SearchHandler {
	return &SearchHandler{catalog: catalog}
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, apierror.BadRequest("q is required", "q"))
		return
	}

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

	result, err := h.catalog.Search(r.Context(), q, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, nil)
}
