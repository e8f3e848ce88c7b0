// Package session owns the camera session: acquiring the source, arming
// the frame pump and releasing both on stop.
package session

import (
	"errors"
	"fmt"
	"sync"

	"smarttag/internal/logger"
	"smarttag/internal/services/capture"
)

var ErrSessionActive = errors.New("camera session already active")

const (
	msgStarted       = "Camera started successfully"
	msgStopped       = "Camera stopped"
	msgAccessDenied  = "Could not access camera. Please check permissions."
	msgAlreadyActive = "Camera is already running"
)

// Pump is the frame pump as driven by a session.
type Pump interface {
	Start(src capture.Source)
	Stop()
}

// State records the session flag and the controls derived from it.
type State interface {
	SetSession(active bool)
}

type Notifier interface {
	Success(message string)
	Error(message string)
	Warning(message string)
	Info(message string)
}

type Config struct {
	Device int
	Width  int
	Height int
}

type Manager struct {
	opener   capture.Opener
	pump     Pump
	state    State
	notifier Notifier
	cfg      Config
	logger   *logger.Logger

	mu  sync.Mutex
	src capture.Source
}

func NewManager(opener capture.Opener, pump Pump, state State, notifier Notifier, cfg Config, logger *logger.Logger) *Manager {
	return &Manager{
		opener:   opener,
		pump:     pump,
		state:    state,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Start opens the camera and arms the pump. On failure the controls are
// left as they were and nothing is armed.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.src != nil {
		m.notifier.Warning(msgAlreadyActive)
		return ErrSessionActive
	}

	src, err := m.opener.OpenCamera(m.cfg.Device, m.cfg.Width, m.cfg.Height)
	if err != nil {
		m.logger.Error("Error accessing camera: %v", err)
		m.notifier.Error(msgAccessDenied)
		return fmt.Errorf("failed to start camera: %w", err)
	}

	m.src = src
	m.state.SetSession(true)
	m.pump.Start(src)

	m.logger.Info("Camera session started on device %d (%dx%d)", m.cfg.Device, m.cfg.Width, m.cfg.Height)
	m.notifier.Success(msgStarted)
	return nil
}

// Stop halts the pump and releases the camera. Stopping an idle session
// is a no-op.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.src == nil {
		return nil
	}

	m.pump.Stop()
	err := m.src.Close()
	m.src = nil
	m.state.SetSession(false)

	m.logger.Info("Camera session stopped")
	m.notifier.Info(msgStopped)

	if err != nil {
		return fmt.Errorf("failed to release camera: %w", err)
	}
	return nil
}

func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.src != nil
}
