package ui

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"distviz/app"
	"distviz/internal"
)

// App represents the HTTP host around the visualizer service
type App struct {
	router  *chi.Mux
	service *app.VisualizerService
	logger  *internal.Logger
}

// Config holds HTTP host configuration
type Config struct {
	Port string
}

// NewApp creates the HTTP application and registers its routes
func NewApp(service *app.VisualizerService, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.NewDefaultLogger()
	}
	a := &App{
		router:  chi.NewRouter(),
		service: service,
		logger:  logger.With("http"),
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the API routes
func (a *App) setupRoutes() {
	a.router.Get("/api/catalog", a.handleCatalog)

	a.router.Route("/api/distributions", func(r chi.Router) {
		r.Get("/", a.handleListDistributions)
		r.Get("/{name}", a.handleDescribe)
		r.Post("/{name}/curve", a.handleCurve)
		r.Post("/{name}/statistics", a.handleStatistics)
		r.Post("/{name}/quantiles", a.handleQuantiles)
		r.Post("/{name}/samples", a.handleSamples)
		r.Post("/{name}/render", a.handleRender)
		r.Post("/{name}/export", a.handleExport)
	})

	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.writeError(w, r, errNoRoute(r.URL.Path))
	})
}

// ServeHTTP lets the app be mounted or exercised with httptest
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Start starts the HTTP server
func (a *App) Start(config Config) error {
	port := config.Port
	if port == "" {
		port = "8080"
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.logger.Info("Starting distviz API server on %s", server.Addr)
	return server.ListenAndServe()
}
