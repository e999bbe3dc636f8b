package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bizportal/internal/dto/request"
	"bizportal/internal/dto/response"
	"bizportal/internal/session"
	"bizportal/internal/usecase"

	"go.uber.org/zap"
)

type AuthHandler struct {
	pages
	service    usecase.AuthService
	exposeCode bool
	log        *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, sessions *session.Manager, exposeCode bool, log *zap.Logger) *AuthHandler {
	log = log.With(zap.String("handler", "auth"))
	return &AuthHandler{
		pages:      pages{sessions: sessions, log: log},
		service:    service,
		exposeCode: exposeCode,
		log:        log,
	}
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "success", nil, nil)
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	req := request.RegisterRequest{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
		Email:    strings.TrimSpace(r.FormValue("email")),
		Phone:    strings.TrimSpace(r.FormValue("phone")),
		Role:     strings.TrimSpace(r.FormValue("role")),
	}

	if _, err := h.service.Register(r.Context(), &req); err != nil {
		h.handleServiceError(w, r, err, "register", req.Role)
		return
	}

	h.flashAndRedirect(w, r, "Registration successful! Please login.", "/login")
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "success", nil, nil)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := request.LoginRequest{
		Username: strings.TrimSpace(r.FormValue("username")),
		Password: r.FormValue("password"),
	}

	pending, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, r, err, "login", "")
		return
	}

	code := ""
	if h.exposeCode {
		code = pending.Code
	}
	h.current(r).BeginLogin(pending.UserID, string(pending.Role), code)

	h.redirect(w, r, "/mfa")
}

// MFAPage handles GET /mfa
func (h *AuthHandler) MFAPage(w http.ResponseWriter, r *http.Request) {
	s := h.current(r)
	if !s.HasPendingLogin() {
		h.flashAndRedirect(w, r, "Please login first.", "/login")
		return
	}

	h.render(w, r, http.StatusOK, "success", response.MFAPageResponse{Code: s.PendingCode}, nil)
}

// VerifyMFA handles POST /mfa
func (h *AuthHandler) VerifyMFA(w http.ResponseWriter, r *http.Request) {
	s := h.current(r)
	if !s.HasPendingLogin() {
		h.flashAndRedirect(w, r, "Please login first.", "/login")
		return
	}

	req := request.VerifyMFARequest{
		Code: strings.TrimSpace(r.FormValue("mfa_code")),
	}

	auth, err := h.service.VerifyMFA(r.Context(), s.PendingUserID, &req)
	if err != nil {
		h.handleServiceError(w, r, err, "verify MFA", "")
		return
	}

	s.Promote(auth.UserID, auth.Username, string(auth.Role))
	h.redirect(w, r, auth.Landing)
}

// Logout handles GET /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	fresh := h.sessions.Destroy(r, h.current(r))
	fresh.AddFlash("You have been logged out.")

	if err := h.sessions.Save(w, r, fresh); err != nil {
		h.log.Error("Failed to save session", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleServiceError maps auth errors to flashes; no detail on which factor
// failed reaches the client.
func (h *AuthHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation, role string) {
	switch {
	case errors.Is(err, usecase.ErrAccountExists):
		h.log.Warn(operation+" failed - already exists", zap.Error(err))
		h.flashAndRender(w, r, http.StatusBadRequest, "Account already exists!", nil, nil)

	case errors.Is(err, usecase.ErrRoleQuotaExceeded):
		h.log.Warn(operation+" failed - role quota", zap.String("role", role))
		h.flashAndRender(w, r, http.StatusBadRequest, fmt.Sprintf("Maximum of 3 %s users allowed.", role), nil, nil)

	case errors.Is(err, usecase.ErrValidation) && operation == "register":
		h.log.Warn(operation+" validation failed", zap.Error(err))
		h.flashAndRender(w, r, http.StatusBadRequest, "Please fill in all fields correctly.", nil, strings.TrimPrefix(err.Error(), usecase.ErrValidation.Error()+": "))

	case errors.Is(err, usecase.ErrInvalidCredentials), errors.Is(err, usecase.ErrValidation) && operation == "login":
		h.log.Warn(operation+" failed - invalid credentials")
		h.flashAndRender(w, r, http.StatusUnauthorized, "Invalid credentials.", nil, nil)

	case errors.Is(err, usecase.ErrInvalidCode):
		h.log.Warn(operation + " failed - invalid code")
		h.flashAndRender(w, r, http.StatusUnauthorized, "Invalid MFA code.", response.MFAPageResponse{Code: h.current(r).PendingCode}, nil)

	case errors.Is(err, usecase.ErrNoPendingLogin):
		h.flashAndRedirect(w, r, "Please login first.", "/login")

	default:
		h.log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		h.render(w, r, http.StatusInternalServerError, "Internal server error", nil, nil)
	}
}
