package adaptor

import (
	"encoding/json"
	"net/http"

	"ratings-catalog/internal/access"
	"ratings-catalog/internal/dto/request"
	"ratings-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// ListComments handles GET /api/titles/{titleID}/reviews/{reviewID}/comments
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")

	result, err := h.service.Comment.List(r.Context(), titleID, reviewID, paginationFromQuery(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Comments retrieved", result)
}

// GetComment handles GET /api/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	result, err := h.service.Comment.GetByID(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Comment retrieved", result)
}

// CreateComment handles POST /api/titles/{titleID}/reviews/{reviewID}/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Comment.Create(r.Context(), requester, titleID, reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Comment created", result)
}

// UpdateComment handles PATCH /api/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *Handler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Comment.Update(r.Context(), requester, titleID, reviewID, commentID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Comment updated", result)
}

// DeleteComment handles DELETE /api/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	titleID := chi.URLParam(r, "titleID")
	reviewID := chi.URLParam(r, "reviewID")
	commentID := chi.URLParam(r, "commentID")

	if err := h.service.Comment.Delete(r.Context(), requester, titleID, reviewID, commentID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}
