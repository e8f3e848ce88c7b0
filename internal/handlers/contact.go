package handlers

import (
	"errors"
	"io"
	"net/http"

	"smarttag/internal/dto"
	"smarttag/internal/lib/api/response"
	"smarttag/internal/logger"
	"smarttag/internal/services"
	"smarttag/internal/services/contact"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

func ContactHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.ContactRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			if errors.Is(err, io.EOF) {
				logger.Warning("Contact request body is empty")
				Error(w, r, http.StatusBadRequest, "empty request")
				return
			}
			logger.Warning("Failed to decode contact request: %v", err)
			Error(w, r, http.StatusBadRequest, "failed to decode request")
			return
		}

		if err := manager.GetContact().Submit(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
			Error(w, r, http.StatusInternalServerError, "failed to submit message")
			return
		}

		OK(w, r, contact.Acknowledgement)
	}
}
