package pump

import (
	"errors"
	"sync"
	"time"

	"smarttag/internal/logger"
	"smarttag/internal/services/capture"

	"github.com/google/uuid"
)

const StreamFrameEvent = "stream_frame"

// Emitter is the streaming channel as seen by the pump.
type Emitter interface {
	Connected() bool
	Emit(event string, payload any) error
}

// FramePayload is the body of a stream_frame event.
type FramePayload struct {
	Image   string `json:"image"`
	FrameID string `json:"frame_id"`
}

type Config struct {
	Interval time.Duration
	Options  capture.Options
}

// Pump captures frames on a fixed interval and forwards them to the backend.
// Frames are dropped, never queued, while the channel is down.
type Pump struct {
	emitter Emitter
	latency *LatencyTracker
	cfg     Config
	logger  *logger.Logger
	now     func() time.Time

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}

	statsMu sync.Mutex
	stats   Stats
}

type Stats struct {
	Sent     int64 `json:"sent"`
	Skipped  int64 `json:"skipped"`
	NotReady int64 `json:"not_ready"`
	Failed   int64 `json:"failed"`
}

func New(emitter Emitter, latency *LatencyTracker, cfg Config, logger *logger.Logger) *Pump {
	return &Pump{
		emitter: emitter,
		latency: latency,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Start arms the capture timer on src. A running pump is stopped first.
func (p *Pump) Start(src capture.Source) {
	p.Stop()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stop = make(chan struct{})
	p.done = make(chan struct{})

	go p.run(src, p.stop, p.done)
	p.logger.Info("Frame pump started (every %v, max width %d)", p.cfg.Interval, p.cfg.Options.MaxWidth)
}

// Stop clears the timer and waits for an in-flight tick. It does not close the source.
func (p *Pump) Stop() {
	p.mu.Lock()
	stop, done := p.stop, p.done
	p.stop, p.done = nil, nil
	p.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
	p.logger.Info("Frame pump stopped")
}

func (p *Pump) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stop != nil
}

func (p *Pump) run(src capture.Source, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			p.tick(src, p.cfg.Options)
		}
	}
}

// tick performs one capture-encode-send step.
func (p *Pump) tick(src capture.Source, opts capture.Options) bool {
	if !p.emitter.Connected() {
		p.count(func(s *Stats) { s.Skipped++ })
		return false
	}

	jpeg, err := src.Capture(opts)
	if err != nil {
		if errors.Is(err, capture.ErrNotReady) {
			p.count(func(s *Stats) { s.NotReady++ })
			return false
		}
		p.count(func(s *Stats) { s.Failed++ })
		p.logger.Warning("Frame capture failed: %v", err)
		return false
	}

	id := uuid.NewString()
	p.latency.MarkSent(id, p.now())

	if err := p.emitter.Emit(StreamFrameEvent, FramePayload{Image: capture.DataURI(jpeg), FrameID: id}); err != nil {
		p.count(func(s *Stats) { s.Failed++ })
		p.logger.Warning("Frame send failed: %v", err)
		return false
	}

	p.count(func(s *Stats) { s.Sent++ })
	return true
}

// SendOnce captures a single full resolution frame from src and sends it.
// Used for uploaded videos.
func (p *Pump) SendOnce(src capture.Source) bool {
	return p.tick(src, capture.Options{})
}

func (p *Pump) count(f func(s *Stats)) {
	p.statsMu.Lock()
	f(&p.stats)
	p.statsMu.Unlock()
}

func (p *Pump) Stats() Stats {
	p.statsMu.Lock()
	defer p.statsMu.Unlock()
	return p.stats
}
