package pump

import (
	"sync"
	"time"
)

const maxPending = 64

type pendingSend struct {
	id     string
	sentAt time.Time
}

// LatencyTracker correlates results with the sends that produced them.
// Results carrying a frame id are matched exactly; anything else is
// attributed to the most recent send.
type LatencyTracker struct {
	mu      sync.Mutex
	pending []pendingSend
}

func NewLatencyTracker() *LatencyTracker {
	return &LatencyTracker{}
}

func (t *LatencyTracker) MarkSent(id string, at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending = append(t.pending, pendingSend{id: id, sentAt: at})
	if len(t.pending) > maxPending {
		t.pending = t.pending[len(t.pending)-maxPending:]
	}
}

// Resolve returns the round trip for a result received at now. Every send up
// to and including the matched one is dropped.
func (t *LatencyTracker) Resolve(id string, now time.Time) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.pending) == 0 {
		return 0, false
	}

	idx := len(t.pending) - 1
	if id != "" {
		idx = -1
		for i, p := range t.pending {
			if p.id == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return 0, false
		}
	}

	elapsed := now.Sub(t.pending[idx].sentAt)
	t.pending = append(t.pending[:0], t.pending[idx+1:]...)
	return elapsed, true
}

func (t *LatencyTracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

func (t *LatencyTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = nil
}
