// Package ui exposes the solving engine over HTTP. The engine itself is
// pure and stateless; this layer only decodes requests, routes them through
// the registry, and renders results.
package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"powercalc/app"
	"powercalc/internal/logging"
)

// App represents the API application.
type App struct {
	router    *chi.Mux
	solve     *app.SolveService
	curves    *app.CurveService
	maxPoints int
	log       *logging.Logger
}

// Config holds UI application configuration.
type Config struct {
	Port string
	// CurveMaxPoints caps the grid size a single curve request may sweep.
	CurveMaxPoints int
}

// NewApp creates a new API application.
func NewApp(config Config) (*App, error) {
	solve := app.NewSolveService()

	maxPoints := config.CurveMaxPoints
	if maxPoints <= 0 {
		maxPoints = 2000
	}

	a := &App{
		router:    chi.NewRouter(),
		solve:     solve,
		curves:    app.NewCurveService(solve),
		maxPoints: maxPoints,
		log:       logging.ForComponent("ui"),
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.router.Use(requestIDMiddleware)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/api/tests", a.handleListTests)
	a.router.Get("/api/tests/{name}", a.handleGetTest)
	a.router.Get("/api/constants", a.handleConstants)
	a.router.Get("/api/methods", a.handleMethods)

	a.router.Post("/api/solve", a.handleSolve)
	a.router.Post("/api/cluster", a.handleCluster)
	a.router.Post("/api/curve", a.handleCurve)
	a.router.Post("/api/export", a.handleExport)
}

// Router returns the configured HTTP handler.
func (a *App) Router() http.Handler {
	return a.router
}

// Serve starts the HTTP server on the given port.
func (a *App) Serve(port string) error {
	a.log.Info("power calculator API listening on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}
