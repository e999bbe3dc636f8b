package adaptor

import (
	"net/http"

	"bizportal/internal/dto/response"
	"bizportal/internal/session"

	"go.uber.org/zap"
)

type HomeHandler struct {
	pages
}

func NewHomeHandler(sessions *session.Manager, log *zap.Logger) *HomeHandler {
	log = log.With(zap.String("handler", "home"))
	return &HomeHandler{pages: pages{sessions: sessions, log: log}}
}

// Home handles GET /
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	s := h.current(r)

	page := response.HomeResponse{LoggedIn: s.IsAuthenticated()}
	if page.LoggedIn {
		page.Username = s.Username
		page.Role = s.Role
	}

	h.render(w, r, http.StatusOK, "success", page, nil)
}
