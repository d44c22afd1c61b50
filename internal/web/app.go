// Package web serves the sheetfilter page: the sheet table, the filter form
// and the download dialog.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ukaji3/sheetfilter-go/internal/logging"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Config holds web application configuration
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// SessionTTL is how long an idle browser session is kept.
	SessionTTL time.Duration
	// Load fetches the workbook. It runs once in the background on Start.
	Load LoadFunc
	// Logger receives application logs. Nil discards them.
	Logger *logging.Logger
}

// App represents the web application
type App struct {
	cfg       Config
	router    *chi.Mux
	templates *template.Template
	loader    *workbookLoader
	sessions  *sessionStore
	log       *logging.Logger
}

// NewApp creates a new web application
func NewApp(cfg Config) (*App, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	templates, err := template.New("").ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	log := cfg.Logger.With("web")
	app := &App{
		cfg:       cfg,
		router:    chi.NewRouter(),
		templates: templates,
		loader:    newWorkbookLoader(cfg.Load, cfg.Logger.With("Loader")),
		sessions:  newSessionStore(cfg.SessionTTL),
		log:       log,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	if a.log.Level() >= logging.LevelDebug {
		a.router.Use(middleware.Logger)
	}
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/sheet", a.handleSelectSheet)
	a.router.Post("/filter", a.handleFilter)
	a.router.Post("/reset", a.handleReset)
	a.router.Post("/download", a.handleDownload)

	a.router.Get("/api/sheets", a.handleSheetsJSON)
	a.router.Get("/api/data", a.handleDataJSON)
	a.router.Get("/healthz", a.handleHealth)
}

// Handler returns the HTTP handler of the app.
func (a *App) Handler() http.Handler {
	return a.router
}

// Start begins loading the workbook in the background.
func (a *App) Start(ctx context.Context) {
	a.loader.Start(ctx)
}

// WaitLoaded blocks until the background load resolves.
func (a *App) WaitLoaded(ctx context.Context) error {
	return a.loader.Wait(ctx)
}

// ListenAndServe starts loading, serves HTTP on cfg.Addr and shuts down
// gracefully when ctx ends.
func (a *App) ListenAndServe(ctx context.Context) error {
	a.Start(ctx)

	srv := &http.Server{
		Addr:              a.cfg.Addr,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("Starting sheetfilter UI on %s", a.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.log.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
