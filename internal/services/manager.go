package services

import (
	"context"
	"encoding/json"
	"errors"

	"smarttag/internal/config"
	"smarttag/internal/dto"
	"smarttag/internal/logger"
	"smarttag/internal/repository"
	"smarttag/internal/services/backend"
	"smarttag/internal/services/capture"
	"smarttag/internal/services/contact"
	"smarttag/internal/services/dashboard"
	"smarttag/internal/services/export"
	"smarttag/internal/services/history"
	"smarttag/internal/services/notify"
	"smarttag/internal/services/preferences"
	"smarttag/internal/services/pump"
	"smarttag/internal/services/render"
	"smarttag/internal/services/session"
	"smarttag/internal/services/storage"
	"smarttag/internal/services/streaming"
	"smarttag/internal/services/upload"
	"smarttag/internal/services/websocket"
	"smarttag/internal/state"
)

const connectedEvent = "connected"

const (
	msgConnected    = "Connected to server"
	msgConnectError = "Failed to connect to server"
	msgDisconnected = "Disconnected from server"
)

// Deps are the pieces that need native libraries or storage and are built
// by the caller.
type Deps struct {
	Opener      capture.Opener
	ToPNG       export.PNGEncoder
	Preferences repository.PreferenceRepository
}

// Manager owns every service of the client and the wiring between them.
type Manager struct {
	state    *state.State
	notifier *notify.Notifier
	hub      *websocket.HubService
	stream   *streaming.Client
	latency  *pump.LatencyTracker
	pump     *pump.Pump
	renderer *render.Renderer
	session  *session.Manager
	backend  *backend.Client
	uploads  *upload.Service
	board    *dashboard.Service
	exports  *export.Service
	theme    *preferences.ThemeService
	contact  *contact.Service
	logger   *logger.Logger
}

func NewManager(cfg *config.Config, deps Deps, logger *logger.Logger) *Manager {
	m := &Manager{logger: logger}

	m.hub = websocket.NewHubService(logger)
	m.state = state.New(history.New(cfg.HistoryLimit), m.hub)
	m.notifier = notify.New(cfg.NotificationTTL, m.hub, logger)

	m.stream = streaming.NewClient(cfg.StreamURL(), streaming.ReconnectConfig{
		MaxRetries:    cfg.ReconnectAttempts,
		RetryDelay:    cfg.ReconnectDelay,
		MaxRetryDelay: cfg.ReconnectDelayMax,
	}, streaming.Callbacks{
		OnConnect:      m.onConnect,
		OnConnectError: m.onConnectError,
		OnDisconnect:   m.onDisconnect,
	}, logger)

	m.latency = pump.NewLatencyTracker()
	m.pump = pump.New(m.stream, m.latency, pump.Config{
		Interval: cfg.CaptureInterval,
		Options:  capture.Options{MaxWidth: cfg.MaxFrameWidth, Quality: cfg.JPEGQuality},
	}, logger)

	m.renderer = render.New(m.state, m.latency, logger)
	m.stream.On(render.ProcessedFrameEvent, m.renderer.HandleEvent)
	m.stream.On(connectedEvent, func(data json.RawMessage) {
		logger.Info("Backend greeting: %s", data)
	})

	m.session = session.NewManager(deps.Opener, m.pump, m.state, m.notifier, session.Config{
		Device: cfg.CameraDevice,
		Width:  cfg.CaptureWidth,
		Height: cfg.CaptureHeight,
	}, logger)

	m.backend = backend.NewClient(cfg.BackendURL, cfg.HTTPTimeout)
	m.uploads = upload.NewService(m.backend, deps.Opener, m.pump, m.state, m.notifier, cfg.UploadDirectory, logger)
	m.board = dashboard.NewService(m.backend, m.notifier, logger)
	m.exports = export.NewService(m.state,
		storage.NewFileService(cfg.ExportDirectory, logger),
		storage.NewFileService(cfg.SnapshotDirectory, logger),
		deps.ToPNG, m.notifier, logger)
	m.theme = preferences.NewThemeService(deps.Preferences, logger)
	m.contact = contact.NewService(m.notifier, logger)

	return m
}

func (m *Manager) onConnect() {
	m.state.SetConnected(true)
	m.notifier.Success(msgConnected)
}

func (m *Manager) onConnectError(err error) {
	m.state.SetConnected(false)
	m.notifier.Error(msgConnectError)
}

func (m *Manager) onDisconnect(err error) {
	m.state.SetConnected(false)
	m.notifier.Warning(msgDisconnected)
}

// Run starts the viewer hub and the streaming channel and blocks until ctx
// is cancelled. A streaming channel that gives up does not stop the rest.
func (m *Manager) Run(ctx context.Context) {
	go m.hub.Run(ctx)

	if err := m.stream.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Error("Streaming channel stopped: %v", err)
	}
	<-ctx.Done()
}

// Stop ends the camera session, if any.
func (m *Manager) Stop() {
	if err := m.session.Stop(); err != nil {
		m.logger.Error("Error stopping camera: %v", err)
	}
	m.logger.Info("Manager stopped")
}

// Snapshot is the full state including the theme and active notifications.
func (m *Manager) Snapshot() dto.StateSnapshot {
	snap := m.state.Snapshot()
	snap.Theme = m.theme.Theme()
	snap.Notifications = m.notifier.Active()
	return snap
}

// ClearResults empties the detection view and the history.
func (m *Manager) ClearResults() {
	m.renderer.Clear()
	m.notifier.Info("Results cleared")
}

func (m *Manager) GetState() *state.State { return m.state }
func (m *Manager) GetNotifier() *notify.Notifier { return m.notifier }
func (m *Manager) GetWebsocketService() *websocket.HubService { return m.hub }
func (m *Manager) GetStream() *streaming.Client { return m.stream }
func (m *Manager) GetPump() *pump.Pump { return m.pump }
func (m *Manager) GetRenderer() *render.Renderer { return m.renderer }
func (m *Manager) GetSession() *session.Manager { return m.session }
func (m *Manager) GetBackend() *backend.Client { return m.backend }
func (m *Manager) GetUploads() *upload.Service { return m.uploads }
func (m *Manager) GetDashboard() *dashboard.Service { return m.board }
func (m *Manager) GetExports() *export.Service { return m.exports }
func (m *Manager) GetTheme() *preferences.ThemeService { return m.theme }
func (m *Manager) GetContact() *contact.Service { return m.contact }
