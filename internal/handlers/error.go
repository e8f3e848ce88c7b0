package handlers

import (
	"net/http"

	"smarttag/internal/lib/api/response"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Error(w http.ResponseWriter, r *http.Request, statusCode int, msg string) {
	render.Status(r, statusCode)
	render.JSON(w, r, response.Error(msg, middleware.GetReqID(r.Context())))
}

func OK(w http.ResponseWriter, r *http.Request, msg string) {
	render.JSON(w, r, response.OK(msg))
}
