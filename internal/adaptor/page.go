package adaptor

import (
	"net/http"

	"bizportal/internal/dto/response"
	"bizportal/internal/session"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

// pages writes page payloads and redirects. Both persist the request
// session first, since flashes may have been queued or drained.
type pages struct {
	sessions *session.Manager
	log      *zap.Logger
}

// current returns the request session. Without the session middleware it
// loads the cookie once and attaches the result to r, so later calls in the
// same handler see the same session.
func (p pages) current(r *http.Request) *session.Session {
	if s := session.FromContext(r.Context()); s != nil {
		return s
	}
	s := p.sessions.Load(r)
	*r = *r.WithContext(session.WithSession(r.Context(), s))
	return s
}

func (p pages) render(w http.ResponseWriter, r *http.Request, code int, message string, page any, errs any) {
	s := p.current(r)
	payload := response.PageResponse{Flashes: s.Flashes(), Page: page}

	if err := p.sessions.Save(w, r, s); err != nil {
		p.log.Error("Failed to save session", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseJSON(w, code, code < http.StatusBadRequest, message, payload, errs)
}

func (p pages) redirect(w http.ResponseWriter, r *http.Request, location string) {
	if err := p.sessions.Save(w, r, p.current(r)); err != nil {
		p.log.Error("Failed to save session", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}
	utils.ResponseSeeOther(w, r, location)
}

func (p pages) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg, location string) {
	p.current(r).AddFlash(msg)
	p.redirect(w, r, location)
}

func (p pages) flashAndRender(w http.ResponseWriter, r *http.Request, code int, msg string, page any, errs any) {
	p.current(r).AddFlash(msg)
	p.render(w, r, code, msg, page, errs)
}
