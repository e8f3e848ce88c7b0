package pump

import (
	"errors"
	"strings"
	"testing"
	"time"

	"smarttag/internal/logger"
	"smarttag/internal/services/capture"
)

func newTestPump(e Emitter) *Pump {
	return New(e, NewLatencyTracker(), Config{
		Interval: 5 * time.Millisecond,
		Options:  capture.Options{MaxWidth: 640, Quality: 80},
	}, logger.Discard())
}

func TestTick_SendsFrameWhenConnected(t *testing.T) {
	emitter := &fakeEmitter{connected: true}
	src := &fakeSource{frame: []byte{0xFF, 0xD8, 0xFF, 0xD9}}
	p := newTestPump(emitter)

	if !p.tick(src, p.cfg.Options) {
		t.Fatal("Expected tick to send")
	}

	sent := emitter.sent()
	if len(sent) != 1 {
		t.Fatalf("Expected 1 frame, got %d", len(sent))
	}
	if emitter.events[0] != StreamFrameEvent {
		t.Errorf("Expected %s event, got %s", StreamFrameEvent, emitter.events[0])
	}
	if !strings.HasPrefix(sent[0].Image, "data:image/jpeg;base64,") {
		t.Errorf("Expected data URI, got %s", sent[0].Image)
	}
	if sent[0].FrameID == "" {
		t.Error("Expected a frame id")
	}
	if src.options[0].MaxWidth != 640 || src.options[0].Quality != 80 {
		t.Errorf("Unexpected capture options: %+v", src.options[0])
	}
	if p.latency.Pending() != 1 {
		t.Errorf("Expected 1 pending send, got %d", p.latency.Pending())
	}
}

func TestTick_SkipsWhenDisconnected(t *testing.T) {
	emitter := &fakeEmitter{connected: false}
	src := &fakeSource{frame: []byte{1}}
	p := newTestPump(emitter)

	if p.tick(src, p.cfg.Options) {
		t.Error("Expected tick to skip")
	}
	if src.captures() != 0 {
		t.Error("Source should not be read while disconnected")
	}
	if p.Stats().Skipped != 1 {
		t.Errorf("Expected 1 skipped tick, got %+v", p.Stats())
	}
}

func TestTick_NoOpWhenSourceNotReady(t *testing.T) {
	emitter := &fakeEmitter{connected: true}
	src := &fakeSource{err: capture.ErrNotReady}
	p := newTestPump(emitter)

	if p.tick(src, p.cfg.Options) {
		t.Error("Expected no-op tick")
	}
	if len(emitter.sent()) != 0 {
		t.Error("Nothing should be sent")
	}
	if p.Stats().NotReady != 1 || p.Stats().Failed != 0 {
		t.Errorf("Unexpected stats: %+v", p.Stats())
	}
}

func TestTick_EmitFailureCounted(t *testing.T) {
	emitter := &fakeEmitter{connected: true, err: errors.New("broken pipe")}
	p := newTestPump(emitter)

	if p.tick(&fakeSource{frame: []byte{1}}, p.cfg.Options) {
		t.Error("Expected failed tick")
	}
	if p.Stats().Failed != 1 {
		t.Errorf("Expected 1 failure, got %+v", p.Stats())
	}
}

func TestSendOnce_FullResolution(t *testing.T) {
	emitter := &fakeEmitter{connected: true}
	src := &fakeSource{frame: []byte{1, 2, 3}}
	p := newTestPump(emitter)

	if !p.SendOnce(src) {
		t.Fatal("Expected SendOnce to send")
	}
	if src.options[0].MaxWidth != 0 {
		t.Errorf("Expected native resolution, got max width %d", src.options[0].MaxWidth)
	}
}

func TestPump_StartStop(t *testing.T) {
	emitter := &fakeEmitter{connected: true}
	src := &fakeSource{frame: []byte{1}}
	p := newTestPump(emitter)

	p.Start(src)
	if !p.Running() {
		t.Fatal("Expected pump to be running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(emitter.sent()) < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if len(emitter.sent()) < 3 {
		t.Fatalf("Expected at least 3 frames, got %d", len(emitter.sent()))
	}

	p.Stop()
	if p.Running() {
		t.Error("Expected pump to be stopped")
	}

	after := src.captures()
	time.Sleep(30 * time.Millisecond)
	if src.captures() != after {
		t.Error("Pump kept capturing after Stop")
	}
}

func TestPump_StopWithoutStart(t *testing.T) {
	p := newTestPump(&fakeEmitter{})
	p.Stop()
	p.Stop()
	if p.Running() {
		t.Error("Expected pump not running")
	}
}
