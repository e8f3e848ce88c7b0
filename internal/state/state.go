// Package state holds the application state shared by the streaming,
// rendering and dashboard components.
package state

import (
	"sync"

	"smarttag/internal/dto"
	"smarttag/internal/services/history"
)

const (
	StateEvent = "state"

	connectedColor    = "var(--success-color)"
	disconnectedColor = "var(--danger-color)"
)

var (
	EmptyVehicles = dto.EmptyState{Icon: "fa-car", Message: "No vehicles detected"}
	EmptyFrauds   = dto.EmptyState{Icon: "fa-check-circle", Message: "No fraud detected"}
)

// Publisher receives every state change. The viewer hub implements it.
type Publisher interface {
	Publish(kind string, payload any)
}

type State struct {
	mu            sync.RWMutex
	connected     bool
	controls      dto.Controls
	sessionActive bool
	loading       bool
	view          dto.DetectionView

	history   *history.Log
	publisher Publisher
}

func New(h *history.Log, publisher Publisher) *State {
	return &State{
		controls:  StoppedControls(),
		view:      EmptyView(),
		history:   h,
		publisher: publisher,
	}
}

func StoppedControls() dto.Controls {
	return dto.Controls{StartEnabled: true, StopEnabled: false}
}

func RunningControls() dto.Controls {
	return dto.Controls{StartEnabled: false, StopEnabled: true}
}

// EmptyView is the detection view before any result arrived.
func EmptyView() dto.DetectionView {
	vehicles := EmptyVehicles
	frauds := EmptyFrauds
	return dto.DetectionView{
		Vehicles: dto.VehicleList{Items: []dto.VehicleEntry{}, Empty: &vehicles},
		Frauds:   dto.FraudList{Items: []dto.FraudEntry{}, Empty: &frauds},
	}
}

func (s *State) History() *history.Log {
	return s.history
}

func (s *State) SetConnected(connected bool) {
	s.mu.Lock()
	s.connected = connected
	s.mu.Unlock()
	s.publish()
}

func (s *State) Connection() dto.Connection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return connection(s.connected)
}

func connection(connected bool) dto.Connection {
	if connected {
		return dto.Connection{Connected: true, Label: "Connected", Color: connectedColor}
	}
	return dto.Connection{Connected: false, Label: "Disconnected", Color: disconnectedColor}
}

// SetSession records whether a camera session is active, updates the
// controls to match and clears the video feed.
func (s *State) SetSession(active bool) {
	s.mu.Lock()
	s.sessionActive = active
	if active {
		s.controls = RunningControls()
	} else {
		s.controls = StoppedControls()
	}
	s.view.VideoFeed = ""
	s.mu.Unlock()
	s.publish()
}

func (s *State) Controls() dto.Controls {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.controls
}

func (s *State) SessionActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionActive
}

func (s *State) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.publish()
}

func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// UpdateView applies f to the detection view under the state lock.
func (s *State) UpdateView(f func(v *dto.DetectionView)) {
	s.mu.Lock()
	f(&s.view)
	s.mu.Unlock()
	s.publish()
}

func (s *State) View() dto.DetectionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyView(s.view)
}

func copyView(v dto.DetectionView) dto.DetectionView {
	out := v
	out.Vehicles.Items = append([]dto.VehicleEntry{}, v.Vehicles.Items...)
	out.Frauds.Items = append([]dto.FraudEntry{}, v.Frauds.Items...)
	return out
}

// Snapshot returns a consistent copy of the whole state.
func (s *State) Snapshot() dto.StateSnapshot {
	s.mu.RLock()
	snap := dto.StateSnapshot{
		Connection:    connection(s.connected),
		Controls:      s.controls,
		SessionActive: s.sessionActive,
		Loading:       s.loading,
		View:          copyView(s.view),
	}
	s.mu.RUnlock()

	snap.History = s.history.Items()
	snap.Timeline = dto.Timeline(snap.History)
	return snap
}

func (s *State) publish() {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(StateEvent, s.Snapshot())
}
