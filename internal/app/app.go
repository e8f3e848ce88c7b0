package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"smarttag/internal/config"
	"smarttag/internal/logger"
	"smarttag/internal/repository/sqlite"
	"smarttag/internal/routes"
	"smarttag/internal/services"
	"smarttag/internal/services/camera"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  *logger.Logger
	db      *sqlite.DB
	manager *services.Manager
}

func NewApp() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	mng := services.NewManager(cfg, services.Deps{
		Opener:      camera.NewOpener(log),
		ToPNG:       camera.ToPNG,
		Preferences: sqlite.NewPreferenceRepository(db),
	}, log)

	return &App{
		config:  cfg,
		logger:  log,
		db:      db,
		manager: mng,
	}, nil
}

// Run serves the dashboard until SIGINT or SIGTERM, then shuts down the
// session, the streaming channel and the HTTP server.
func (a *App) Run() error {
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start background services
	done := make(chan struct{})
	go func() {
		defer close(done)
		a.manager.Run(ctx)
	}()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.config.Port),
		Handler:           routes.SetupRoutes(a.manager, a.config, a.logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("🚗 SmartTag Toll Client\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("🛰️ Backend: %s\n", a.config.BackendURL)
	fmt.Printf("📁 Exports: %s\n", a.config.ExportDirectory)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("Shutdown signal received")
	case serveErr = <-errCh:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("HTTP shutdown: %v", err)
	}

	a.manager.Stop()
	<-done

	if serveErr != nil {
		return fmt.Errorf("failed to serve: %w", serveErr)
	}
	return nil
}

func (a *App) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Error("Failed to close database: %v", err)
	}
	a.logger.Close()
}
