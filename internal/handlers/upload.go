package handlers

import (
	"errors"
	"net/http"

	"smarttag/internal/logger"
	"smarttag/internal/services"
	"smarttag/internal/services/upload"
)

const maxUploadSize = 512 << 20

// UploadHandler accepts a multipart "video" field and runs the upload flow.
func UploadHandler(manager *services.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

		file, header, err := r.FormFile("video")
		if err != nil {
			logger.Warning("Upload without video field: %v", err)
			Error(w, r, http.StatusBadRequest, "No video file provided")
			return
		}
		defer file.Close()

		err = manager.GetUploads().Upload(r.Context(), header.Filename, file)
		switch {
		case errors.Is(err, upload.ErrNotVideo):
			Error(w, r, http.StatusUnsupportedMediaType, "Please select a video file")
			return
		case err != nil:
			Error(w, r, http.StatusBadGateway, "Error uploading video")
			return
		}

		OK(w, r, "Video uploaded successfully")
	}
}

