package logger

import (
	"os"
	"strings"
	"testing"
)

func TestLogger_WritesLevelFiles(t *testing.T) {
	dir := t.TempDir()

	l, err := New(dir)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer l.Close()

	l.Info("camera %s started", "front")
	l.Warning("frame skipped")
	l.Error("upload failed: %v", "timeout")

	tests := []struct {
		file string
		want string
	}{
		{InfoFile, "camera front started"},
		{WarningFile, "frame skipped"},
		{ErrorFile, "upload failed: timeout"},
	}

	for _, tt := range tests {
		data, err := os.ReadFile(l.Path(tt.file))
		if err != nil {
			t.Fatalf("Failed to read %s: %v", tt.file, err)
		}
		if !strings.Contains(string(data), tt.want) {
			t.Errorf("%s: expected %q, got %q", tt.file, tt.want, string(data))
		}
	}
}

func TestLogger_CleanLogs(t *testing.T) {
	dir := t.TempDir()

	l, err := New(dir)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	defer l.Close()

	l.Info("something")
	if err := l.CleanLogs(InfoFile); err != nil {
		t.Fatalf("CleanLogs failed: %v", err)
	}

	info, err := os.Stat(l.Path(InfoFile))
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("Expected empty file, got %d bytes", info.Size())
	}
}

func TestDiscard(t *testing.T) {
	l := Discard()
	l.Info("ignored")
	l.Warning("ignored")
	l.Error("ignored")
	if err := l.CleanLogs(InfoFile); err != nil {
		t.Errorf("Expected nil error for discard logger, got %v", err)
	}
}
