package render

import (
	"math"
	"sync"
	"time"
)

// FPSMeter counts results and recomputes the rate once per window of at
// least one second.
type FPSMeter struct {
	mu    sync.Mutex
	count int
	start time.Time
	fps   int
}

func NewFPSMeter(start time.Time) *FPSMeter {
	return &FPSMeter{start: start}
}

// Tick records one result at now and returns the current rate.
func (m *FPSMeter) Tick(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.start.IsZero() {
		m.start = now
	}
	m.count++

	delta := now.Sub(m.start)
	if delta >= time.Second {
		m.fps = int(math.Round(float64(m.count) * float64(time.Second) / float64(delta)))
		m.count = 0
		m.start = now
	}
	return m.fps
}

func (m *FPSMeter) FPS() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fps
}
