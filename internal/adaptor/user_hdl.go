package adaptor

import (
	"encoding/json"
	"net/http"

	"ratings-catalog/internal/access"
	"ratings-catalog/internal/dto/request"
	"ratings-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// ListUsers handles GET /api/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())

	result, err := h.service.User.List(r.Context(), requester, paginationFromQuery(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Users retrieved", result)
}

// CreateUser handles POST /api/users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())

	var req request.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.User.Create(r.Context(), requester, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "User created", result)
}

// GetUser handles GET /api/users/{username}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	username := chi.URLParam(r, "username")

	result, err := h.service.User.GetByUsername(r.Context(), requester, username)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "User retrieved", result)
}

// UpdateUser handles PATCH /api/users/{username}
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	username := chi.URLParam(r, "username")

	var req request.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.User.UpdateByUsername(r.Context(), requester, username, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "User updated", result)
}

// DeleteUser handles DELETE /api/users/{username}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	username := chi.URLParam(r, "username")

	if err := h.service.User.DeleteByUsername(r.Context(), requester, username); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}

// GetProfile handles GET /api/users/me
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())

	result, err := h.service.User.GetProfile(r.Context(), requester)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved", result)
}

// UpdateProfile handles PATCH /api/users/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())

	var req request.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.User.UpdateProfile(r.Context(), requester, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Profile updated", result)
}
