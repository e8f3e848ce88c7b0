package pump

import (
	"sync"

	"smarttag/internal/services/capture"
)

type fakeEmitter struct {
	mu        sync.Mutex
	connected bool
	err       error
	events    []string
	payloads  []FramePayload
}

func (e *fakeEmitter) Connected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.connected
}

func (e *fakeEmitter) Emit(event string, payload any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, event)
	if fp, ok := payload.(FramePayload); ok {
		e.payloads = append(e.payloads, fp)
	}
	return nil
}

func (e *fakeEmitter) sent() []FramePayload {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]FramePayload(nil), e.payloads...)
}

type fakeSource struct {
	mu      sync.Mutex
	frame   []byte
	err     error
	calls   int
	options []capture.Options
}

func (s *fakeSource) Capture(opts capture.Options) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.options = append(s.options, opts)
	if s.err != nil {
		return nil, s.err
	}
	return s.frame, nil
}

func (s *fakeSource) Close() error { return nil }

func (s *fakeSource) captures() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
