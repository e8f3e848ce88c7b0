package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"smarttag/internal/logger"
	"smarttag/internal/services"
	"smarttag/internal/services/export"
	"smarttag/internal/services/storage"

	"github.com/go-chi/render"
)

type ShareResponse struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

func serveDownload(w http.ResponseWriter, f storage.File, contentType string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Name))
	w.Write(f.Data)
}

// ExportResultsHandler writes the detection export and returns it as a download.
func ExportResultsHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := manager.GetExports().ExportDetection()
		if err != nil {
			logger.Error("Export failed: %v", err)
			Error(w, r, http.StatusInternalServerError, "failed to export results")
			return
		}
		serveDownload(w, f, "application/json")
	}
}

func SnapshotHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, err := manager.GetExports().Snapshot()
		if errors.Is(err, export.ErrNoFrame) {
			Error(w, r, http.StatusNotFound, "No video feed available")
			return
		}
		if err != nil {
			logger.Error("Snapshot failed: %v", err)
			Error(w, r, http.StatusInternalServerError, "failed to capture snapshot")
			return
		}
		serveDownload(w, f, "image/png")
	}
}

func ShareHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, ShareResponse{
			Title: "SmartTag Detection Results",
			Text:  manager.GetExports().Share(),
		})
	}
}

func ReportHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := manager.GetExports().Report(w); err != nil {
			logger.Error("Report failed: %v", err)
		}
	}
}
