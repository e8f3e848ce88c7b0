package handlers

import (
	"errors"
	"net/http"

	"smarttag/internal/logger"
	"smarttag/internal/services"
	"smarttag/internal/services/session"

	"github.com/go-chi/render"
)

func StartCameraHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := manager.GetSession().Start()
		switch {
		case errors.Is(err, session.ErrSessionActive):
			Error(w, r, http.StatusConflict, "camera already running")
			return
		case err != nil:
			logger.Error("Start camera failed: %v", err)
			Error(w, r, http.StatusServiceUnavailable, "Could not access camera. Please check permissions.")
			return
		}
		render.JSON(w, r, manager.Snapshot())
	}
}

func StopCameraHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := manager.GetSession().Stop(); err != nil {
			logger.Error("Stop camera failed: %v", err)
		}
		render.JSON(w, r, manager.Snapshot())
	}
}
