// Package preferences persists the user's theme choice.
package preferences

import (
	"errors"
	"fmt"
	"sync"

	"smarttag/internal/logger"
	"smarttag/internal/repository"
)

const (
	ThemeKey   = "theme"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var ErrInvalidTheme = errors.New("invalid theme")

type ThemeService struct {
	repo   repository.PreferenceRepository
	logger *logger.Logger

	mu    sync.RWMutex
	theme string
}

// NewThemeService reads the stored theme, defaulting to light when none
// or an unknown value is stored.
func NewThemeService(repo repository.PreferenceRepository, logger *logger.Logger) *ThemeService {
	s := &ThemeService{repo: repo, logger: logger, theme: ThemeLight}

	stored, err := repo.Get(ThemeKey)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		logger.Warning("Could not read theme preference: %v", err)
	case valid(stored):
		s.theme = stored
	default:
		logger.Warning("Ignoring stored theme %q", stored)
	}
	return s
}

func valid(theme string) bool {
	return theme == ThemeLight || theme == ThemeDark
}

func (s *ThemeService) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// Set stores theme and makes it current.
func (s *ThemeService) Set(theme string) error {
	if !valid(theme) {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Set(ThemeKey, theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	s.theme = theme
	return nil
}

// Toggle switches between light and dark and persists the result.
func (s *ThemeService) Toggle() (string, error) {
	next := ThemeDark
	if s.Theme() == ThemeDark {
		next = ThemeLight
	}
	if err := s.Set(next); err != nil {
		return s.Theme(), err
	}
	s.logger.Info("Theme switched to %s", next)
	return next, nil
}
