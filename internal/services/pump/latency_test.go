package pump

import (
	"testing"
	"time"
)

func TestLatencyTracker_ExactMatch(t *testing.T) {
	lt := NewLatencyTracker()
	base := time.Unix(1000, 0)

	lt.MarkSent("a", base)
	lt.MarkSent("b", base.Add(200*time.Millisecond))
	lt.MarkSent("c", base.Add(400*time.Millisecond))

	got, ok := lt.Resolve("b", base.Add(300*time.Millisecond))
	if !ok {
		t.Fatal("Expected match for b")
	}
	if got != 100*time.Millisecond {
		t.Errorf("Expected 100ms, got %v", got)
	}
	if lt.Pending() != 1 {
		t.Errorf("Expected only c pending, got %d", lt.Pending())
	}
}

func TestLatencyTracker_FallbackToLatestSend(t *testing.T) {
	lt := NewLatencyTracker()
	base := time.Unix(1000, 0)

	lt.MarkSent("a", base)
	lt.MarkSent("b", base.Add(200*time.Millisecond))

	got, ok := lt.Resolve("", base.Add(250*time.Millisecond))
	if !ok {
		t.Fatal("Expected a fallback match")
	}
	if got != 50*time.Millisecond {
		t.Errorf("Expected 50ms, got %v", got)
	}
	if lt.Pending() != 0 {
		t.Errorf("Expected nothing pending, got %d", lt.Pending())
	}
}

func TestLatencyTracker_UnknownOrEmpty(t *testing.T) {
	lt := NewLatencyTracker()
	if _, ok := lt.Resolve("", time.Now()); ok {
		t.Error("Expected no match on empty tracker")
	}

	lt.MarkSent("a", time.Now())
	if _, ok := lt.Resolve("zzz", time.Now()); ok {
		t.Error("Expected no match for unknown id")
	}
	if lt.Pending() != 1 {
		t.Error("Unknown id should not drop pending sends")
	}
}

func TestLatencyTracker_Bounded(t *testing.T) {
	lt := NewLatencyTracker()
	for i := 0; i < maxPending*2; i++ {
		lt.MarkSent("x", time.Now())
	}
	if lt.Pending() != maxPending {
		t.Errorf("Expected %d pending, got %d", maxPending, lt.Pending())
	}
	lt.Reset()
	if lt.Pending() != 0 {
		t.Error("Expected empty after reset")
	}
}
