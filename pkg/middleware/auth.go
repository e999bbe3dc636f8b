package middleware

import (
	"net/http"

	"bizportal/internal/authz"
	"bizportal/internal/data/entity"
	"bizportal/internal/session"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

const (
	flashLoginRequired = "Please login to access this page."
	flashUnauthorized  = "Unauthorized access."
)

// Session loads the signed session cookie into the request context and,
// for authenticated sessions, the user identity.
func Session(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := sessions.Load(r)

			ctx := session.WithSession(r.Context(), s)
			if s.IsAuthenticated() {
				ctx = utils.SetUserContext(ctx, s.UserID, s.Username, s.Role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin redirects anonymous and half-logged-in sessions to /login.
func RequireLogin(sessions *session.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := session.FromContext(r.Context())
			if s == nil || !s.IsAuthenticated() {
				logger.Debug("Unauthenticated access", zap.String("path", r.URL.Path))
				redirectWithFlash(w, r, sessions, s, flashLoginRequired, "/login", logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole admits the request only if the policy lets the session role
// perform op. Denials go home with a generic message.
func RequireRole(policy authz.Policy, op authz.Operation, sessions *session.Manager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := utils.GetRoleFromContext(r.Context())

			if err := policy.Authorize(entity.UserRole(role), op); err != nil {
				userID, _ := utils.GetUserIDFromContext(r.Context())
				logger.Warn("Role check: access denied",
					zap.Int64("user_id", userID),
					zap.String("role", role),
					zap.String("operation", string(op)),
					zap.String("path", r.URL.Path),
				)
				redirectWithFlash(w, r, sessions, session.FromContext(r.Context()), flashUnauthorized, "/", logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func redirectWithFlash(w http.ResponseWriter, r *http.Request, sessions *session.Manager, s *session.Session, msg, location string, logger *zap.Logger) {
	if s == nil {
		s = sessions.Load(r)
	}
	s.AddFlash(msg)
	if err := sessions.Save(w, r, s); err != nil {
		logger.Error("Failed to save session", zap.Error(err))
	}
	utils.ResponseSeeOther(w, r, location)
}
