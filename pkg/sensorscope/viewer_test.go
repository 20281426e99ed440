package sensorscope

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alx-cc/sensor-scope/internal/domain"
)

// fakeSource hands the ingest channel back to the test so payloads can be
// injected without a broker.
type fakeSource struct {
	mu      sync.Mutex
	out     chan<- domain.RawMessage
	stopped bool
}

func (s *fakeSource) Start(out chan<- domain.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = out
	return nil
}

func (s *fakeSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *fakeSource) emit(payload string) {
	s.mu.Lock()
	out := s.out
	s.mu.Unlock()
	out <- domain.RawMessage{Topic: "sensors/demo/readings", Payload: []byte(payload)}
}

func fastConfig() *Config {
	cfg := DefaultConfig()
	cfg.View.RefreshPeriod = 5 * time.Millisecond
	cfg.View.WindowCapacity = 16
	return cfg
}

func TestViewerRuntimeEndToEnd(t *testing.T) {
	src := &fakeSource{}
	rend, frames, closeFrames := NewChannelRenderer("test", 64)
	defer closeFrames()

	rt, err := NewViewerRuntime(fastConfig(),
		WithSource(src),
		WithRenderer(rend),
		WithObservability(NopObservability()),
	)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	if err := rt.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	src.emit("21.0,21.0,101.0,101.0")
	src.emit("garbage")
	src.emit("22.0,21.5,102.0,101.5")

	deadline := time.After(2 * time.Second)
	var frame Frame
	for {
		select {
		case <-deadline:
			t.Fatalf("never observed both samples in a frame")
		case frame = <-frames:
		}
		if len(frame.Series["temperature"]) == 2 {
			break
		}
	}

	temp := frame.Series["temperature"]
	if temp[0] != 21.0 || temp[1] != 22.0 {
		t.Fatalf("expected temperature [21 22], got %v", temp)
	}
	for name, win := range frame.Series {
		if len(win) != 2 {
			t.Fatalf("series %s drifted: %v", name, win)
		}
	}
	if frame.Freshness.State != FeedFresh {
		t.Fatalf("expected fresh feed, got %s", frame.Freshness.State)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rt.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !src.stopped {
		t.Fatalf("source was not stopped")
	}
}

func TestViewerRuntimeSnapshotOnDemand(t *testing.T) {
	src := &fakeSource{}
	rt, err := NewViewerRuntime(fastConfig(),
		WithSource(src),
		WithRenderer(NewCallbackRenderer("discard", func(Frame) error { return nil })),
		WithObservability(NopObservability()),
	)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}

	snap := rt.Snapshot()
	if snap.Freshness.State != FeedNeverReceived {
		t.Fatalf("expected never_received before start, got %s", snap.Freshness.State)
	}

	if err := rt.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	src.emit("1,2,3,4")

	deadline := time.After(2 * time.Second)
	for {
		snap = rt.Snapshot()
		if len(snap.Series["pressure"]) == 1 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("sample never reached the store")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if snap.Series["pressure"][0] != 3 {
		t.Fatalf("unexpected pressure window: %v", snap.Series["pressure"])
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rt.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestViewerRuntimeSurvivesRendererFailure(t *testing.T) {
	src := &fakeSource{}
	rt, err := NewViewerRuntime(fastConfig(),
		WithSource(src),
		WithRenderer(NewCallbackRenderer("flaky", func(Frame) error { return fmt.Errorf("display detached") })),
		WithObservability(NopObservability()),
	)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	if err := rt.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}

	src.emit("1,2,3,4")
	time.Sleep(30 * time.Millisecond)

	// Ingestion must be unaffected by a failing renderer.
	if snap := rt.Snapshot(); len(snap.Series["temperature"]) != 1 {
		t.Fatalf("ingestion stalled by renderer failure: %v", snap.Series)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rt.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestViewerRuntimeRequiresConfig(t *testing.T) {
	if _, err := NewViewerRuntime(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestViewerRuntimeDoubleStart(t *testing.T) {
	src := &fakeSource{}
	rt, err := NewViewerRuntime(fastConfig(),
		WithSource(src),
		WithRenderer(NewCallbackRenderer("discard", func(Frame) error { return nil })),
		WithObservability(NopObservability()),
	)
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	if err := rt.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := rt.Start(); err == nil {
		t.Fatalf("expected error on second start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rt.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
