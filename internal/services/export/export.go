// Package export produces the files and summaries users take out of the
// application: JSON exports, snapshots, the printable report and the
// share text.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smarttag/internal/dto"
	"smarttag/internal/logger"
	"smarttag/internal/services/capture"
	"smarttag/internal/services/storage"
)

var ErrNoFrame = errors.New("no video feed available")

const (
	isoMillis = "2006-01-02T15:04:05.000Z07:00"

	msgExported          = "Results exported successfully"
	msgDashboardExported = "Dashboard data exported successfully"
	msgSnapshotSaved     = "Snapshot saved"
	msgNoFrame           = "No video feed available"
)

type StateReader interface {
	Snapshot() dto.StateSnapshot
}

type Notifier interface {
	Success(message string)
	Warning(message string)
}

// PNGEncoder converts a JPEG frame to PNG.
type PNGEncoder func(jpeg []byte) ([]byte, error)

type Service struct {
	state     StateReader
	exports   *storage.FileService
	snapshots *storage.FileService
	toPNG     PNGEncoder
	notifier  Notifier
	logger    *logger.Logger
	now       func() time.Time
}

func NewService(state StateReader, exports, snapshots *storage.FileService, toPNG PNGEncoder, notifier Notifier, logger *logger.Logger) *Service {
	return &Service{
		state:     state,
		exports:   exports,
		snapshots: snapshots,
		toPNG:     toPNG,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(isoMillis)
}

// Detection builds the detection export document.
func (s *Service) Detection() dto.DetectionExport {
	snap := s.state.Snapshot()
	return dto.DetectionExport{
		Timestamp: s.timestamp(),
		Stats:     snap.View.Counters.Display(),
		History:   snap.History,
	}
}

// ExportDetection writes the detection export as indented JSON.
func (s *Service) ExportDetection() (storage.File, error) {
	const op = "export.ExportDetection"

	f, err := s.writeJSON("export", s.Detection())
	if err != nil {
		return storage.File{}, fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Success(msgExported)
	return f, nil
}

func (s *Service) Dashboard(totals dto.DashboardTotals) dto.DashboardExport {
	return dto.DashboardExport{
		Timestamp: s.timestamp(),
		Stats:     totals,
	}
}

func (s *Service) ExportDashboard(totals dto.DashboardTotals) (storage.File, error) {
	const op = "export.ExportDashboard"

	f, err := s.writeJSON("dashboard", s.Dashboard(totals))
	if err != nil {
		return storage.File{}, fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Success(msgDashboardExported)
	return f, nil
}

func (s *Service) writeJSON(kind string, v any) (storage.File, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return storage.File{}, fmt.Errorf("failed to marshal %s: %w", kind, err)
	}
	return s.exports.Save(kind, "json", data)
}

// Snapshot saves the frame currently shown as PNG.
func (s *Service) Snapshot() (storage.File, error) {
	const op = "export.Snapshot"

	feed := s.state.Snapshot().View.VideoFeed
	if feed == "" {
		s.notifier.Warning(msgNoFrame)
		return storage.File{}, fmt.Errorf("%s: %w", op, ErrNoFrame)
	}

	jpeg, err := capture.DecodeDataURI(feed)
	if err != nil {
		return storage.File{}, fmt.Errorf("%s: failed to decode frame: %w", op, err)
	}

	png, err := s.toPNG(jpeg)
	if err != nil {
		return storage.File{}, fmt.Errorf("%s: %w", op, err)
	}

	f, err := s.snapshots.Save("snapshot", "png", png)
	if err != nil {
		return storage.File{}, fmt.Errorf("%s: %w", op, err)
	}
	s.notifier.Success(msgSnapshotSaved)
	return f, nil
}

// Share returns the text summary of the current counters.
func (s *Service) Share() string {
	c := s.state.Snapshot().View.Counters.Display()
	return fmt.Sprintf("Vehicles: %s, Frauds: %s", c.Vehicles, c.Frauds)
}
