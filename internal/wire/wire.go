package wire

import (
	"net/http"
	"strings"

	"bizportal/internal/adaptor"
	"bizportal/internal/authz"
	"bizportal/internal/data/repository"
	"bizportal/internal/report"
	"bizportal/internal/session"
	"bizportal/internal/usecase"
	"bizportal/pkg/middleware"
	"bizportal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled router.
type App struct {
	Router *chi.Mux
}

// Deps are the externally built collaborators. Nil Sender or Renderer fall
// back to the log sender and the no-op renderer.
type Deps struct {
	Repo     *repository.Repository
	Sessions *session.Manager
	Sender   usecase.CodeSender
	Renderer report.Renderer
	Policy   authz.Policy
}

// Wiring builds services, handlers and routes.
func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	if deps.Policy == nil {
		deps.Policy = authz.DefaultPolicy()
	}

	service := usecase.NewService(deps.Repo, deps.Sender, deps.Renderer, config, logger)
	handler := adaptor.NewHandler(service, deps.Sessions, config, logger)

	router := setupRouter(handler, deps, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, deps Deps, config *utils.Config, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recover(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Session(deps.Sessions))

	guard := guards{policy: deps.Policy, sessions: deps.Sessions, log: logger}

	wireAuth(r, handler.Home, handler.Auth)
	wireCatalog(r, handler.Catalog, guard)
	wireQuery(r, handler.Query, guard)
	wireDashboard(r, handler.Dashboard, guard)

	if config.Chart.Backend == "file" {
		prefix := "/" + strings.Trim(config.Chart.URLPrefix, "/")
		r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(config.Chart.Dir))))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// guards builds the per-route middleware chains.
type guards struct {
	policy   authz.Policy
	sessions *session.Manager
	log      *zap.Logger
}

func (g guards) login() func(http.Handler) http.Handler {
	return middleware.RequireLogin(g.sessions, g.log)
}

func (g guards) role(op authz.Operation) func(http.Handler) http.Handler {
	return middleware.RequireRole(g.policy, op, g.sessions, g.log)
}
