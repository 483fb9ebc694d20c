package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/openbank/openbank-api/internal/api"
	apiMiddleware "github.com/openbank/openbank-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"WWW-Authenticate"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var pinger api.Pinger
	if app.db != nil {
		pinger = app.db
	}
	healthHandler := api.NewHealthHandler(pinger)
	customerHandler := api.NewCustomerHandler(app.customerService, app.logger)
	authHandler := api.NewAuthHandler(app.customerService, app.jwtService, app.logger)
	accountHandler := api.NewAccountHandler(app.customerService, app.accountService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	r.Post("/customers/register", customerHandler.Register)
	r.Post("/auth/logon", authHandler.Logon)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/accounts/open", accountHandler.OpenAccount)
		r.Get("/accounts/overview", accountHandler.Overview)
	})

	return r
}
