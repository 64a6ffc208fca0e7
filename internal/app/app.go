// Package app provides application-level wiring for the docmill service:
// artifact storage, audit trail, transformation services, and the router.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/afero"

	"docmill/internal/api"
	"docmill/internal/artifact"
	"docmill/internal/audit"
	"docmill/internal/config"
	"docmill/internal/service/compress"
	"docmill/internal/service/extract"
	"docmill/internal/service/tabular"
)

// Deps holds the external dependencies that main() must provide: config,
// the filesystem to keep artifacts on, and the logger.
type Deps struct {
	Cfg    *config.Config
	FS     afero.Fs
	Logger *slog.Logger
}

// Services groups the transformation services the HTTP handler and the CLI
// share.
type Services struct {
	Extract  *extract.Service
	Tabular  *tabular.Service
	Compress *compress.Service
}

// App is the fully wired application. Janitor is nil when retention
// sweeping is disabled.
type App struct {
	Services Services
	Store    *artifact.Store
	Router   http.Handler
	Janitor  *artifact.Janitor
}

// New wires the artifact store, audit log, services, handler, and router
// from the provided deps.
func New(deps Deps) (*App, error) {
	cfg := deps.Cfg

	store, err := artifact.NewStore(deps.FS, cfg.ScratchDir, deps.Logger.With("component", "artifact-store"))
	if err != nil {
		return nil, fmt.Errorf("artifact store: %w", err)
	}
	auditLog := audit.NewLogger(deps.FS, cfg.AuditLogPath)

	extractSvc := extract.NewService(cfg.ExtractCharCap, extract.NewFitzReader(), deps.Logger.With("component", "extract"))
	tabularSvc := tabular.NewService(deps.Logger.With("component", "tabular"))
	converter := compress.NewGhostscript(cfg.GhostscriptBin, deps.Logger.With("component", "ghostscript"))
	compressSvc := compress.NewService(store, converter, auditLog, cfg.PublicBaseURL, deps.Logger.With("component", "compress"))

	handler := api.NewHandler(extractSvc, tabularSvc, compressSvc, deps.Logger.With("component", "api"))
	router := api.NewRouter(api.RouterConfig{
		MaxUploadBytes:     cfg.MaxUploadBytes,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitRPS:       cfg.RateLimitRPS,
		RateLimitBurst:     cfg.RateLimitBurst,
	}, handler, store.HTTPDir())

	var janitor *artifact.Janitor
	if cfg.JanitorEnabled {
		janitor = artifact.NewJanitor(store, cfg.Retention, cfg.SweepSchedule, deps.Logger.With("component", "janitor"))
	}

	return &App{
		Services: Services{Extract: extractSvc, Tabular: tabularSvc, Compress: compressSvc},
		Store:    store,
		Router:   router,
		Janitor:  janitor,
	}, nil
}
