// Package upload handles user supplied videos: type check, upload to the
// backend and a single frame preview through the pump.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"smarttag/internal/logger"
	"smarttag/internal/services/backend"
	"smarttag/internal/services/capture"

	"github.com/gabriel-vasile/mimetype"
)

var ErrNotVideo = errors.New("not a video file")

const (
	msgNotVideo = "Please select a video file"
	msgUploaded = "Video uploaded successfully"
	msgFailed   = "Error uploading video"
)

type Uploader interface {
	UploadVideo(ctx context.Context, filename string, video io.Reader) (backend.UploadResult, error)
}

// FrameSender sends one frame from a source.
type FrameSender interface {
	SendOnce(src capture.Source) bool
}

type LoadingState interface {
	SetLoading(loading bool)
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

type Service struct {
	backend  Uploader
	opener   capture.Opener
	sender   FrameSender
	state    LoadingState
	notifier Notifier
	dir      string
	logger   *logger.Logger
	now      func() time.Time
}

func NewService(backend Uploader, opener capture.Opener, sender FrameSender, state LoadingState, notifier Notifier, dir string, logger *logger.Logger) *Service {
	return &Service{
		backend:  backend,
		opener:   opener,
		sender:   sender,
		state:    state,
		notifier: notifier,
		dir:      dir,
		logger:   logger,
		now:      time.Now,
	}
}

// Upload stores the video locally, rejects anything that is not video/*,
// forwards it to the backend and previews its first frame.
func (s *Service) Upload(ctx context.Context, filename string, r io.Reader) error {
	const op = "upload.Upload"

	path, err := s.save(filename, r)
	if err != nil {
		s.logger.Error("Error saving upload %s: %v", filename, err)
		s.notifier.Error(msgFailed)
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := checkVideo(path); err != nil {
		os.Remove(path)
		s.logger.Warning("Rejected upload %s: %v", filename, err)
		s.notifier.Error(msgNotVideo)
		return fmt.Errorf("%s: %w", op, err)
	}

	s.state.SetLoading(true)
	defer s.state.SetLoading(false)

	if err := s.forward(ctx, filename, path); err != nil {
		s.logger.Error("Error uploading video %s: %v", filename, err)
		s.notifier.Error(msgFailed)
		return fmt.Errorf("%s: %w", op, err)
	}

	s.logger.Info("Uploaded video %s", filename)
	s.notifier.Success(msgUploaded)
	s.preview(path)
	return nil
}

func (s *Service) save(filename string, r io.Reader) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s", s.now().Format("20060102_150405"), filepath.Base(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

func checkVideo(path string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to detect type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), "video/") {
		return fmt.Errorf("%w: %s", ErrNotVideo, mtype.String())
	}
	return nil
}

func (s *Service) forward(ctx context.Context, filename, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if _, err := s.backend.UploadVideo(ctx, filepath.Base(filename), f); err != nil {
		return err
	}
	return nil
}

// preview sends the first frame of the video once at full resolution.
func (s *Service) preview(path string) {
	src, err := s.opener.OpenFile(path)
	if err != nil {
		s.logger.Warning("Could not open uploaded video %s: %v", path, err)
		return
	}
	defer src.Close()

	if !s.sender.SendOnce(src) {
		s.logger.Warning("Preview frame of %s was not sent", path)
	}
}
