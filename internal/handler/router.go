package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterOptions carries what the router needs besides the handler.
type RouterOptions struct {
	Tokens         TokenParser
	Logger         *slog.Logger
	RequestTimeout time.Duration
	// Metrics wraps every route when set; MetricsHandler is mounted at /metrics.
	Metrics        func(http.Handler) http.Handler
	MetricsHandler http.Handler
}

// NewRouter mounts the API. Reads are public; POST, PUT and DELETE need a bearer token.
func NewRouter(h *ShelterHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics)
	}
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	authed := RequireToken(opts.Tokens, opts.Logger)

	r.Get("/", h.Index)
	r.Get("/health", h.Health)
	if opts.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", opts.MetricsHandler)
	}

	r.Get("/login", h.Login)
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)

	r.Route("/animals", func(r chi.Router) {
		r.Get("/", h.ListAnimals)
		r.With(authed).Post("/", h.AddAnimal)
		r.Get("/{id}", h.GetAnimal)
		r.With(authed).Put("/{id}", h.UpdateAnimal)
		r.With(authed).Delete("/{id}", h.DeleteAnimal)
	})

	r.Route("/centers", func(r chi.Router) {
		r.Get("/", h.ListCenters)
		r.Get("/{id}", h.GetCenter)
	})

	r.Route("/species", func(r chi.Router) {
		r.Get("/", h.ListSpecies)
		r.With(authed).Post("/", h.AddSpecies)
		r.Get("/{id}", h.GetSpecies)
	})

	return r
}
