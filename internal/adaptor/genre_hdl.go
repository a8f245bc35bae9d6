package adaptor

import (
	"encoding/json"
	"net/http"

	"ratings-catalog/internal/access"
	"ratings-catalog/internal/dto/request"
	"ratings-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// ListGenres handles GET /api/genres
func (h *Handler) ListGenres(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	result, err := h.service.Genre.List(r.Context(), search, paginationFromQuery(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Genres retrieved", result)
}

// CreateGenre handles POST /api/genres
func (h *Handler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())

	var req request.ClassificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Genre.Create(r.Context(), requester, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Genre created", result)
}

// DeleteGenre handles DELETE /api/genres/{slug}
func (h *Handler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	if err := h.service.Genre.DeleteBySlug(r.Context(), requester, slug); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}
