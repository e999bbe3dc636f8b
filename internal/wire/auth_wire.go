package wire

import (
	"bizportal/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, homeHandler *adaptor.HomeHandler, authHandler *adaptor.AuthHandler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/", homeHandler.Home)

	r.Get("/register", authHandler.RegisterPage)
	r.Post("/register", authHandler.Register)
	r.Get("/login", authHandler.LoginPage)
	r.Post("/login", authHandler.Login)
	r.Get("/logout", authHandler.Logout)

	// Pending sessions only; the handler sends everyone else back to /login.
	r.Get("/mfa", authHandler.MFAPage)
	r.Post("/mfa", authHandler.VerifyMFA)
}
