package streaming

import (
	"context"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	cfg := DefaultReconnectConfig()

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 1 * time.Second},
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 5 * time.Second},
		{5, 5 * time.Second},
		{40, 5 * time.Second},
	}

	for _, tt := range tests {
		if got := calculateBackoff(tt.attempt, cfg); got != tt.want {
			t.Errorf("calculateBackoff(%d) = %v, expected %v", tt.attempt, got, tt.want)
		}
	}
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if sleep(ctx, time.Hour) {
		t.Error("Expected sleep to report cancellation")
	}
	if !sleep(context.Background(), time.Millisecond) {
		t.Error("Expected sleep to complete")
	}
}
