package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ratings-catalog/internal/access"
	"ratings-catalog/internal/dto/request"
	"ratings-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
)

// ListTitles handles GET /api/titles
func (h *Handler) ListTitles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := request.TitleListFilter{
		Category: query.Get("category"),
		Genre:    query.Get("genre"),
		Name:     query.Get("name"),
	}
	if yearStr := query.Get("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid year filter", nil)
			return
		}
		filter.Year = &year
	}

	result, err := h.service.Title.List(r.Context(), filter, paginationFromQuery(r))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Titles retrieved", result)
}

// GetTitle handles GET /api/titles/{titleID}
func (h *Handler) GetTitle(w http.ResponseWriter, r *http.Request) {
	titleID := chi.URLParam(r, "titleID")

	result, err := h.service.Title.GetByID(r.Context(), titleID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Title retrieved", result)
}

// CreateTitle handles POST /api/titles
func (h *Handler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())

	var req request.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Title.Create(r.Context(), requester, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseCreated(w, "Title created", result)
}

// UpdateTitle handles PATCH /api/titles/{titleID}
func (h *Handler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	titleID := chi.URLParam(r, "titleID")

	var req request.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.service.Title.Update(r.Context(), requester, titleID, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseSuccess(w, "Title updated", result)
}

// DeleteTitle handles DELETE /api/titles/{titleID}
func (h *Handler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	requester := access.RequesterFromContext(r.Context())
	titleID := chi.URLParam(r, "titleID")

	if err := h.service.Title.Delete(r.Context(), requester, titleID); err != nil {
		h.handleServiceError(w, err)
		return
	}

	utils.ResponseNoContent(w)
}
