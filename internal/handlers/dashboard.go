package handlers

import (
	"errors"
	"io"
	"net/http"

	"smarttag/internal/dto"
	"smarttag/internal/lib/api/response"
	"smarttag/internal/logger"
	"smarttag/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type TransactionDetails struct {
	Plate        string               `json:"plate"`
	Transactions []dto.TransactionRow `json:"transactions"`
}

func DashboardHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, manager.GetDashboard().Data(r.Context()))
	}
}

func RefreshDashboardHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, manager.GetDashboard().Load(r.Context()))
	}
}

func ExportDashboardHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		totals := manager.GetDashboard().Data(r.Context()).Totals
		f, err := manager.GetExports().ExportDashboard(totals)
		if err != nil {
			logger.Error("Dashboard export failed: %v", err)
			Error(w, r, http.StatusInternalServerError, "failed to export dashboard")
			return
		}
		serveDownload(w, f, "application/json")
	}
}

func TransactionDetailsHandler(manager *services.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plate := chi.URLParam(r, "plate")
		render.JSON(w, r, TransactionDetails{
			Plate:        plate,
			Transactions: manager.GetDashboard().ViewDetails(plate),
		})
	}
}

// VerifyHandler forwards a plate/class pair to the backend's verification.
func VerifyHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.VerifyRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				Error(w, r, http.StatusBadRequest, "empty request")
				return
			}
			Error(w, r, http.StatusBadRequest, "failed to decode request")
			return
		}

		if err := manager.GetContact().Validate(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
			Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		result, err := manager.GetBackend().VerifyVehicle(r.Context(), req.PlateNumber, req.VehicleClass)
		if err != nil {
			logger.Error("Verification failed: %v", err)
			Error(w, r, http.StatusBadGateway, "verification failed")
			return
		}
		render.JSON(w, r, result)
	}
}
