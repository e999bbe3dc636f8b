package adaptor

import (
	"net/http"

	"bizportal/internal/session"
	"bizportal/internal/usecase"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

// DashboardHandler serves the role dashboards. Role checks happen in the
// router middleware.
type DashboardHandler struct {
	pages
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, sessions *session.Manager, log *zap.Logger) *DashboardHandler {
	log = log.With(zap.String("handler", "dashboard"))
	return &DashboardHandler{
		pages:   pages{sessions: sessions, log: log},
		service: service,
		log:     log,
	}
}

// Sales handles GET /sales
func (h *DashboardHandler) Sales(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())

	page, err := h.service.Sales(r.Context(), userID)
	h.respond(w, r, page, err, "sales dashboard")
}

// Income handles GET /income
func (h *DashboardHandler) Income(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Income(r.Context())
	h.respond(w, r, page, err, "income dashboard")
}

// Developer handles GET /developer
func (h *DashboardHandler) Developer(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Developer(r.Context())
	h.respond(w, r, page, err, "developer dashboard")
}

// Partner handles GET /partner
func (h *DashboardHandler) Partner(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.Partner(r.Context())
	h.respond(w, r, page, err, "partner dashboard")
}

func (h *DashboardHandler) respond(w http.ResponseWriter, r *http.Request, page any, err error, operation string) {
	if err != nil {
		h.log.Error("Failed to load "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	h.render(w, r, http.StatusOK, "success", page, nil)
}
