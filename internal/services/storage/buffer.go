// Package storage writes exported artifacts (snapshots, JSON exports) to disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"smarttag/internal/logger"
)

const filePrefix = "smarttag"

type File struct {
	Name string
	Path string
	Data []byte
}

type FileService struct {
	dir    string
	mu     sync.Mutex
	logger *logger.Logger
	now    func() time.Time
}

func NewFileService(dir string, logger *logger.Logger) *FileService {
	return &FileService{
		dir:    dir,
		logger: logger,
		now:    time.Now,
	}
}

// Name returns smarttag-<kind>-<unix ms>.<ext> for the current time.
func (s *FileService) Name(kind, ext string) string {
	return fmt.Sprintf("%s-%s-%d.%s", filePrefix, kind, s.now().UnixMilli(), ext)
}

// Save writes data under a fresh name and returns the stored file.
func (s *FileService) Save(kind, ext string, data []byte) (File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return File{}, fmt.Errorf("failed to create directory: %w", err)
	}

	name := s.Name(kind, ext)
	fullpath := filepath.Join(s.dir, name)
	if err := os.WriteFile(fullpath, data, 0644); err != nil {
		return File{}, fmt.Errorf("failed to save %s: %w", name, err)
	}

	s.logger.Info("Saved %s (%d bytes)", fullpath, len(data))
	return File{Name: name, Path: fullpath, Data: data}, nil
}

func (s *FileService) Dir() string {
	return s.dir
}
