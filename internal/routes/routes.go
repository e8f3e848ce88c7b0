package routes

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"smarttag/internal/config"
	"smarttag/internal/handlers"
	"smarttag/internal/logger"
	"smarttag/internal/middleware"
	"smarttag/internal/services"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// dynamicHTMLHandler serves /path as <static>/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		if path == "/" {
			path = "/index"
		}
		if strings.Contains(path, "..") {
			http.NotFound(w, r)
			return
		}

		filePath := filepath.Join(staticDir, path+".html")

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}

		http.ServeFile(w, r, filePath)
	}
}

// SetupRoutes registers the dashboard API, log endpoints, auth and static
// pages, all behind the optional password gate.
func SetupRoutes(manager *services.Manager, cfg *config.Config, logger *logger.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Recoverer)
	router.Use(middleware.Auth(cfg.Password, cfg.SessionSecret))

	// Static files
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDirectory))))

	router.Route("/api", func(r chi.Router) {
		r.Get("/view", handlers.ViewWebsocketHandler(manager, logger))
		r.Get("/state", handlers.StateHandler(manager))

		r.Post("/camera/start", handlers.StartCameraHandler(manager, logger))
		r.Post("/camera/stop", handlers.StopCameraHandler(manager, logger))
		r.Post("/upload", handlers.UploadHandler(manager, logger))

		r.Post("/results/clear", handlers.ClearResultsHandler(manager))
		r.Get("/results/export", handlers.ExportResultsHandler(manager, logger))
		r.Get("/snapshot", handlers.SnapshotHandler(manager, logger))
		r.Get("/share", handlers.ShareHandler(manager))

		r.Get("/theme", handlers.GetThemeHandler(manager))
		r.Post("/theme", handlers.ToggleThemeHandler(manager, logger))

		r.Get("/dashboard", handlers.DashboardHandler(manager))
		r.Post("/dashboard/refresh", handlers.RefreshDashboardHandler(manager))
		r.Get("/dashboard/export", handlers.ExportDashboardHandler(manager, logger))
		r.Get("/transactions/{plate}", handlers.TransactionDetailsHandler(manager))
		r.Post("/verify", handlers.VerifyHandler(manager, logger))

		r.Get("/notifications", handlers.NotificationsHandler(manager))
		r.Delete("/notifications/{id}", handlers.DismissNotificationHandler(manager))

		r.Post("/contact", handlers.ContactHandler(manager, logger))
	})

	router.Get("/report", handlers.ReportHandler(manager, logger))

	// Log endpoints
	router.Get("/logs/{level}", handlers.ShowLogsHandler(logger))
	router.Post("/logs/{level}/clear", handlers.ClearLogsHandler(logger))

	// Auth endpoints
	router.Post("/auth/login", handlers.LoginHandler(cfg, logger))
	router.Post("/auth/logout", handlers.LogoutHandler(logger))

	// Automatic HTML handler mapping for example: /dashboard -> <static>/dashboard.html
	router.Get("/*", dynamicHTMLHandler(cfg.StaticDirectory))

	return router
}
