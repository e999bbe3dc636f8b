package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"bizportal/internal/dto/request"
	"bizportal/internal/session"
	"bizportal/internal/usecase"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

type QueryHandler struct {
	pages
	service usecase.QueryService
	log     *zap.Logger
}

func NewQueryHandler(service usecase.QueryService, sessions *session.Manager, log *zap.Logger) *QueryHandler {
	log = log.With(zap.String("handler", "query"))
	return &QueryHandler{
		pages:   pages{sessions: sessions, log: log},
		service: service,
		log:     log,
	}
}

// QueryPage handles GET /query
func (h *QueryHandler) QueryPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Page(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "load query page")
		return
	}

	h.render(w, r, http.StatusOK, "success", page, nil)
}

// Submit handles POST /query
func (h *QueryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	req := request.SubmitQueryRequest{
		Name:    strings.TrimSpace(r.FormValue("name")),
		Email:   strings.TrimSpace(r.FormValue("email")),
		Message: strings.TrimSpace(r.FormValue("message")),
	}

	if _, err := h.service.Submit(r.Context(), &req); err != nil {
		h.handleServiceError(w, r, err, "submit query")
		return
	}

	h.flashAndRedirect(w, r, "Query submitted successfully.", "/query")
}

// Respond handles POST /respond_query
func (h *QueryHandler) Respond(w http.ResponseWriter, r *http.Request) {
	queryID, ok := utils.ParseInt64(r.FormValue("query_id"))
	if !ok {
		h.flashAndRender(w, r, http.StatusBadRequest, "Invalid query.", nil, nil)
		return
	}

	req := request.RespondQueryRequest{
		QueryID:  queryID,
		Response: strings.TrimSpace(r.FormValue("response")),
	}

	if err := h.service.Respond(r.Context(), &req); err != nil {
		h.handleServiceError(w, r, err, "respond to query")
		return
	}

	h.flashAndRedirect(w, r, "Response submitted successfully.", "/query")
}

func (h *QueryHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		h.flashAndRender(w, r, http.StatusBadRequest, "Please fill in all fields.", nil,
			strings.TrimPrefix(err.Error(), usecase.ErrValidation.Error()+": "))

	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, "Query not found")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
