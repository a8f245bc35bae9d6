package adaptor

import (
	"encoding/json"
	"net/http"

	"ratings-catalog/internal/access"
	"ratings-catalog/internal/dto/request"
	"ratings-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// ListCategories handles GET /api/categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	result, err := h.service.Category.List(r.Context(), search, paginationFromQuery(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Categories retrieved", result)
}

// CreateCategory handles POST /api/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())

	var req request.ClassificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Category.Create(r.Context(), requester, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Category created", result)
}

// DeleteCategory handles DELETE /api/categories/{slug}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	slug := chi.URLParam(r, "slug")

	if err := h.service.Category.DeleteBySlug(r.Context(), requester, slug); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}
