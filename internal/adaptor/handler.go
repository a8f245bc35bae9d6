package adaptor

import (
	"net/http"
	"strings"

	"ratings-catalog/internal/dto/request"
	"ratings-catalog/internal/usecase"
	"ratings-catalog/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	service *usecase.Service
	log     *zap.Logger
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

// handleServiceError maps the service error taxonomy onto HTTP status codes.
// Services phrase errors with stable keywords, so a substring match is enough.
func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	msg := err.Error()

	switch {
	case strings.Contains(msg, "validation failed"):
		utils.ResponseBadRequest(w, "Validation failed", msg)
	case strings.Contains(msg, "not found"):
		utils.ResponseNotFound(w, msg)
	case strings.Contains(msg, "forbidden"):
		utils.ResponseForbidden(w, "You do not have permission to perform this action")
	case strings.Contains(msg, "already"):
		utils.ResponseConflict(w, msg)
	case strings.Contains(msg, "invalid"):
		utils.ResponseBadRequest(w, msg, nil)
	default:
		h.log.Error("Unhandled service error", zap.Error(err))
		utils.ResponseInternalError(w, "Something went wrong")
	}
}

// paginationFromQuery reads page and per_page with sane defaults
func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}
}
