// Package server assembles the HTTP surface: router construction, REST
// handlers, and the mapping from domain errors to status codes.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/folioworks/folio/internal/auth"
	"github.com/folioworks/folio/internal/directory"
	foliomiddleware "github.com/folioworks/folio/internal/middleware"
	"github.com/folioworks/folio/internal/services/portfolio"
	"github.com/folioworks/folio/internal/services/position"
)

// RouterOptions controls the construction of the HTTP router. Services
// and authentication dependencies are required; the rest have defaults.
type RouterOptions struct {
	Portfolios *portfolio.Service
	Positions  *position.Service
	Directory  directory.Directory
	Roles      *directory.RoleMapper

	// Tokens enables the /auth/login endpoint and bearer authentication.
	// Optional; with a nil issuer only Basic credentials work.
	Tokens *auth.TokenIssuer

	Logger      zerolog.Logger
	CORSOptions *cors.Options
}

// DefaultCORSOptions returns the shared development CORS policy.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

// NewRouter assembles a chi.Router with shared middleware, the public
// endpoints, and the authenticated /api group mounted.
func NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(foliomiddleware.RequestLogger(opts.Logger))
	r.Use(chimiddleware.Recoverer)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if opts.Tokens != nil {
		r.Post("/auth/login", HandleLogin(opts.Directory, opts.Tokens))
	}

	authn := foliomiddleware.NewAuthn(foliomiddleware.AuthnDependencies{
		Directory: opts.Directory,
		Roles:     opts.Roles,
		Tokens:    opts.Tokens,
	})

	portfolios := NewPortfolioHandlers(opts.Portfolios)
	positions := NewPositionHandlers(opts.Positions)

	r.Route("/api", func(api chi.Router) {
		api.Use(authn)

		api.Get("/auth/whoami", HandleWhoAmI())

		api.Route("/portfolios", func(pr chi.Router) {
			pr.Get("/", portfolios.List)
			pr.Post("/", portfolios.Create)
			pr.Get("/{id}", portfolios.Get)
			pr.Put("/{id}", portfolios.Update)
			pr.Delete("/{id}", portfolios.Delete)
		})

		api.Route("/positions", func(pr chi.Router) {
			pr.Get("/", positions.List)
			pr.Post("/", positions.Create)
			pr.Get("/{id}", positions.Get)
			pr.Put("/{id}", positions.Update)
			pr.Delete("/{id}", positions.Delete)
		})
	})

	return r
}
