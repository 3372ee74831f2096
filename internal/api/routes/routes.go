package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"qr-service/internal/api/handlers"
	"qr-service/internal/api/middleware"
	"qr-service/internal/core/ports"
)

// Config wires every handler and cross-cutting middleware into the router.
type Config struct {
	QRHandler       *handlers.QRHandler
	ViewHandler     *handlers.ViewHandler
	TrackedHandler  *handlers.TrackedHandler
	RedirectHandler *handlers.RedirectHandler
	HealthHandler   *handlers.HealthHandler

	CORSMiddleware *middleware.CORSMiddleware
	Logger         *middleware.LoggingMiddleware
	RateLimiter    ports.RateLimiter
	TrackedService ports.TrackedService
}

type Router struct {
	config *Config
	chi    *chi.Mux
}

func NewRouter(config *Config) *Router {
	return &Router{config: config, chi: chi.NewRouter()}
}

func (r *Router) SetupRoutes() http.Handler {
	r.chi.Use(chimiddleware.Recoverer)
	r.chi.Use(chimiddleware.RequestID)
	r.chi.Use(chimiddleware.RealIP)
	r.chi.Use(chimiddleware.Timeout(60 * time.Second))

	if r.config.CORSMiddleware != nil {
		r.chi.Use(r.config.CORSMiddleware.Handler)
	}
	if r.config.Logger != nil {
		r.chi.Use(r.config.Logger.Handler)
	}

	// Health is mounted with no auth and no rate limit.
	r.chi.Get("/api/v1/health", r.config.HealthHandler.Health)

	r.chi.Route("/api/v1", func(api chi.Router) {
		if r.config.RateLimiter != nil {
			api.Use(middleware.RateLimit(r.config.RateLimiter))
		}
		r.setupQRRoutes(api)
		r.setupTrackedRoutes(api)
	})

	// Short-URL redirects live at the HTTP root, never under /api/v1, and
	// are never rate-limited so scans are never suppressed.
	if r.config.RedirectHandler != nil {
		r.chi.Get("/r/{code}", r.config.RedirectHandler.Redirect)
	}

	if r.config.ViewHandler != nil {
		viewRoute := func(rt chi.Router) {
			rt.Get("/qr/view", r.config.ViewHandler.View)
		}
		if r.config.RateLimiter != nil {
			r.chi.Group(func(rt chi.Router) {
				rt.Use(middleware.RateLimit(r.config.RateLimiter))
				viewRoute(rt)
			})
		} else {
			viewRoute(r.chi)
		}
	}

	return r.chi
}

func (r *Router) setupQRRoutes(api chi.Router) {
	if r.config.QRHandler == nil {
		return
	}
	api.Route("/qr", func(qr chi.Router) {
		qr.Post("/generate", r.config.QRHandler.Generate)
		qr.Post("/decode", r.config.QRHandler.Decode)
		qr.Post("/batch", r.config.QRHandler.Batch)
		qr.Post("/template/{type}", r.config.QRHandler.Template)
	})
}

func (r *Router) setupTrackedRoutes(api chi.Router) {
	if r.config.TrackedHandler == nil {
		return
	}
	api.Route("/qr/tracked", func(tracked chi.Router) {
		tracked.Post("/", r.config.TrackedHandler.Create)

		tracked.Group(func(guarded chi.Router) {
			if r.config.TrackedService != nil {
				guarded.Use(middleware.RequireCapability(r.config.TrackedService))
			}
			guarded.Get("/{id}/stats", r.config.TrackedHandler.Stats)
			guarded.Delete("/{id}", r.config.TrackedHandler.Delete)
		})
	})
}

func (r *Router) GetHandler() http.Handler {
	return r.chi
}
