package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers are the services mounted by NewRouter.
type Handlers struct {
	Login    services.Handler
	Accounts services.Handler
	Catalog  services.Handler
}

// DefaultCORSOptions is a permissive policy for local development.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"email",
			"password",
			"user_id",
			"recipe_id",
		},
		MaxAge: 300,
	}
}

// NewRouter mounts the login, account and catalog handlers. Signup
// (POST /account) and login bypass the authorizer, every other account and
// catalog call goes through it.
func NewRouter(h Handlers, a Authorizer, logger logging.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(DefaultCORSOptions()))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/login", invoke(h.Login, logger))
	r.Post("/account", invoke(h.Accounts, logger))

	r.Group(func(r chi.Router) {
		r.Use(authorize(a, logger))

		r.Get("/account", invoke(h.Accounts, logger))
		r.Put("/account", invoke(h.Accounts, logger))
		r.Delete("/account", invoke(h.Accounts, logger))

		r.Get("/catalog", invoke(h.Catalog, logger))
		r.Post("/catalog", invoke(h.Catalog, logger))
		r.Put("/catalog", invoke(h.Catalog, logger))
		r.Delete("/catalog", invoke(h.Catalog, logger))
	})

	return r
}
