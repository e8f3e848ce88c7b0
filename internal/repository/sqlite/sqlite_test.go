package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"smarttag/internal/repository"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNew_AppliesMigrations(t *testing.T) {
	db := newTestDB(t)

	var count int
	err := db.Conn().Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'preferences'`)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected preferences table, found %d", count)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.Migrate(); err != nil {
		t.Errorf("Second migrate should be a no-op, got %v", err)
	}
}

func TestPreferenceRepository_GetMissing(t *testing.T) {
	repo := NewPreferenceRepository(newTestDB(t))

	if _, err := repo.Get("theme"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPreferenceRepository_SetAndOverwrite(t *testing.T) {
	repo := NewPreferenceRepository(newTestDB(t))

	if err := repo.Set("theme", "dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := repo.Set("theme", "light"); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}

	got, err := repo.Get("theme")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "light" {
		t.Errorf("Expected light, got %q", got)
	}
}
