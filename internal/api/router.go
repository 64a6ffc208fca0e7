package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"docmill/internal/middleware"
)

// RouterConfig carries the router-level settings.
type RouterConfig struct {
	MaxUploadBytes     int64
	CORSAllowedOrigins []string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// NewRouter assembles the chi router: middleware stack, transformation
// endpoints, and the artifact file server under /static.
func NewRouter(cfg RouterConfig, h *Handler, artifacts http.FileSystem) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))

	r.Get("/health", h.HandleHealth)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(artifacts)))

	// Upload endpoints share the global size cap.
	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxUploadBytes(cfg.MaxUploadBytes))
		r.Post("/extract", h.HandleExtract)
		r.Post("/excel-cleaner", h.HandleCleanSheet)
		r.Post("/pdf-compress", h.HandleCompress)
	})

	return r
}
