// Package freshness tracks how recently the feed produced an accepted sample.
package freshness

import (
	"sync"
	"time"

	"github.com/alx-cc/sensor-scope/internal/domain"
)

// Monitor records the timestamp of the last successful append and classifies
// the feed against an idle threshold. Written by the ingest pipeline, read by
// the refresh pipeline.
type Monitor struct {
	mu        sync.Mutex
	threshold time.Duration
	last      time.Time
	received  bool
}

// NewMonitor creates a Monitor with the given idle threshold.
func NewMonitor(threshold time.Duration) *Monitor {
	return &Monitor{threshold: threshold}
}

// RecordSuccess marks now as the last accepted sample. A now earlier than the
// stored value is clamped: clock sources are not strictly monotonic on every
// platform, and a fresh reading must never look stale because of that.
func (m *Monitor) RecordSuccess(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.received || now.After(m.last) {
		m.last = now
	}
	m.received = true
}

// Classify reports the feed state at now. Before the first accepted sample it
// returns FeedNeverReceived, so a consumer can show "waiting for data"
// instead of a bogus idle time.
func (m *Monitor) Classify(now time.Time) domain.Freshness {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.received {
		return domain.Freshness{State: domain.FeedNeverReceived}
	}
	idle := now.Sub(m.last)
	if idle < 0 {
		idle = 0
	}
	if idle <= m.threshold {
		return domain.Freshness{State: domain.FeedFresh, Idle: idle}
	}
	return domain.Freshness{State: domain.FeedStale, Idle: idle}
}

// Threshold returns the configured idle threshold.
func (m *Monitor) Threshold() time.Duration { return m.threshold }
