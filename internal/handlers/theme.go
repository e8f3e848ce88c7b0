package handlers

import (
	"net/http"

	"smarttag/internal/logger"
	"smarttag/internal/services"

	"github.com/go-chi/render"
)

type ThemeResponse struct {
	Theme string `json:"theme"`
}

func GetThemeHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, ThemeResponse{Theme: manager.GetTheme().Theme()})
	}
}

func ToggleThemeHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		theme, err := manager.GetTheme().Toggle()
		if err != nil {
			logger.Error("Theme toggle failed: %v", err)
			Error(w, r, http.StatusInternalServerError, "failed to save theme")
			return
		}
		render.JSON(w, r, ThemeResponse{Theme: theme})
	}
}
