package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"smarttag/internal/logger"
)

func TestSave_WritesNamedFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	s := NewFileService(dir, logger.Discard())
	s.now = func() time.Time { return time.UnixMilli(1714564800123) }

	f, err := s.Save("export", "json", []byte(`{"ok":true}`))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if f.Name != "smarttag-export-1714564800123.json" {
		t.Errorf("Unexpected name %q", f.Name)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("Unexpected content %q", data)
	}
}

func TestName(t *testing.T) {
	s := NewFileService(t.TempDir(), logger.Discard())
	s.now = func() time.Time { return time.UnixMilli(42) }

	if got := s.Name("snapshot", "png"); got != "smarttag-snapshot-42.png" {
		t.Errorf("Unexpected name %q", got)
	}
}
