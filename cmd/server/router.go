package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/vsconnect-api/internal/api"
	apiMiddleware "github.com/phrazzld/vsconnect-api/internal/api/middleware"
	"github.com/phrazzld/vsconnect-api/internal/platform/logger"
)

// setupRouter creates the router with all routes and middleware. The request
// gate runs on every route; no route requires an authenticated identity.
func (app *application) setupRouter() (http.Handler, error) {
	gate, err := apiMiddleware.NewGate(
		app.tokenCodec,
		app.identityResolver,
		app.config.Auth.BypassRoutes,
		app.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request gate: %w", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(logger.WithLogger(req.Context(), app.logger)))
		})
	})
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(gate.Handler)

	authHandler := api.NewAuthHandler(app.loginService, app.logger)
	userHandler := api.NewUserHandler(app.userService, app.logger)
	serviceHandler := api.NewServiceHandler(app.serviceRecordService, app.logger)

	r.Post("/login", authHandler.Login)

	r.Route("/usuarios", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Register)
	})

	r.Route("/servicos", func(r chi.Router) {
		r.Get("/", apiMiddleware.WithIdentity(serviceHandler.List))
		r.Post("/", apiMiddleware.WithIdentity(serviceHandler.Create))
		r.Get("/{id}", apiMiddleware.WithIdentity(serviceHandler.Get))
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r, nil
}
