package adaptor

import (
	"encoding/json"
	"net/http"

	"ratings-catalog/internal/access"
	"ratings-catalog/internal/dto/request"
	"ratings-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// ListReviews handles GET /api/titles/{titleID}/reviews
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")

	result, err := h.service.Review.List(r.Context(), titleID, paginationFromQuery(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved", result)
}

// GetReview handles GET /api/titles/{titleID}/reviews/{reviewID}
func (h *Handler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")

	result, err := h.service.Review.GetByID(r.Context(), titleID, reviewID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Review retrieved", result)
}

// CreateReview handles POST /api/titles/{titleID}/reviews
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	titleID := chi.URLParam(r, "titleID")

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Review.Create(r.Context(), requester, titleID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Review created", result)
}

// UpdateReview handles PATCH /api/titles/{titleID}/reviews/{reviewID}
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Review.Update(r.Context(), requester, titleID, reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Review updated", result)
}

// DeleteReview handles DELETE /api/titles/{titleID}/reviews/{reviewID}
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")

	if err := h.service.Review.Delete(r.Context(), requester, titleID, reviewID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}
