package handlers

import (
	"net/http"
	"strconv"

	"smarttag/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// StateHandler returns the full application state.
func StateHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, manager.Snapshot())
	}
}

func NotificationsHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, manager.GetNotifier().Active())
	}
}

func DismissNotificationHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			Error(w, r, http.StatusBadRequest, "invalid notification id")
			return
		}
		if !manager.GetNotifier().Dismiss(id) {
			Error(w, r, http.StatusNotFound, "notification not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ClearResultsHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		manager.ClearResults()
		render.JSON(w, r, manager.Snapshot())
	}
}
