package pipeline

import (
	"context"
	"time"

	"github.com/alx-cc/sensor-scope/internal/domain"
	"github.com/alx-cc/sensor-scope/internal/freshness"
	"github.com/alx-cc/sensor-scope/internal/ports"
	"github.com/alx-cc/sensor-scope/internal/store"
)

// RefreshLoop is the consumer side: on a fixed period it snapshots the store
// and the freshness classification into a Frame and hands it to the renderer.
// time.Ticker coalesces missed ticks, so a slow renderer delays the next
// frame instead of queueing stale ones.
type RefreshLoop struct {
	store    *store.Store
	mon      *freshness.Monitor
	renderer ports.Renderer
	obs      ports.Observability
	period   time.Duration
	now      func() time.Time
}

// NewRefreshLoop builds the consumer schedule. The clock is injectable for
// tests; nil means time.Now.
func NewRefreshLoop(st *store.Store, mon *freshness.Monitor, r ports.Renderer, obs ports.Observability, period time.Duration, now func() time.Time) *RefreshLoop {
	if now == nil {
		now = time.Now
	}
	if obs == nil {
		obs = ports.NopObs{}
	}
	return &RefreshLoop{store: st, mon: mon, renderer: r, obs: obs, period: period, now: now}
}

// Run ticks until ctx is cancelled. Render errors are logged and the loop
// keeps going; presentation failures must not stop ingestion observability.
func (l *RefreshLoop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := l.Tick(); err != nil {
				l.obs.LogError("render_failed", err, ports.Field{Key: "renderer", Value: l.renderer.Name()})
			}
		}
	}
}

// Tick takes one consistent snapshot and renders it. Exposed so tests and
// embedders can drive the loop manually.
func (l *RefreshLoop) Tick() error {
	now := l.now()
	frame := domain.Frame{
		Series:    l.store.SnapshotAll(),
		Freshness: l.mon.Classify(now),
		TakenAt:   now,
	}

	start := time.Now()
	err := l.renderer.RenderFrame(frame)
	l.obs.ObserveLatency("scope_render_latency_seconds", time.Since(start).Seconds())
	if err != nil {
		return err
	}

	l.obs.IncCounter("scope_frames_rendered_total", 1)
	l.obs.SetGauge("scope_feed_idle_seconds", frame.Freshness.Idle.Seconds())
	return nil
}
