package store

import (
	"errors"
	"fmt"
	"sync"
)

// ErrSchemaMismatch is returned when AppendAll receives a key set that does
// not exactly match the configured series. It indicates a configuration bug
// between decoder and store, not bad wire data.
var ErrSchemaMismatch = errors.New("store: value set does not match configured series")

// Store owns one Window per configured series behind a single lock, so a
// concurrent reader can never observe series whose lengths have drifted
// apart. Writes come from the ingest pipeline only; reads from the refresh
// pipeline via SnapshotAll.
type Store struct {
	mu      sync.RWMutex
	series  []string
	windows map[string]*Window
}

// New creates a Store with one empty window of the given capacity per series.
func New(series []string, capacity int) (*Store, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("store: at least one series is required")
	}
	windows := make(map[string]*Window, len(series))
	for _, name := range series {
		if name == "" {
			return nil, fmt.Errorf("store: empty series name")
		}
		if _, dup := windows[name]; dup {
			return nil, fmt.Errorf("store: duplicate series %q", name)
		}
		windows[name] = NewWindow(capacity)
	}
	names := make([]string, len(series))
	copy(names, series)
	return &Store{series: names, windows: windows}, nil
}

// AppendAll appends one value to every series as a single atomic unit. The
// key set of values must equal the configured series exactly; on mismatch
// nothing is appended and ErrSchemaMismatch is returned.
func (s *Store) AppendAll(values map[string]float64) error {
	if len(values) != len(s.series) {
		return fmt.Errorf("%w: got %d values, want %d", ErrSchemaMismatch, len(values), len(s.series))
	}
	for _, name := range s.series {
		if _, ok := values[name]; !ok {
			return fmt.Errorf("%w: missing series %q", ErrSchemaMismatch, name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, name := range s.series {
		s.windows[name].Append(values[name])
	}
	return nil
}

// SnapshotAll copies every window at a single consistent instant, oldest
// first, keyed by series name.
func (s *Store) SnapshotAll() map[string][]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]float64, len(s.series))
	for _, name := range s.series {
		out[name] = s.windows[name].Snapshot()
	}
	return out
}

// Series returns the configured series names in declared order.
func (s *Store) Series() []string {
	out := make([]string, len(s.series))
	copy(out, s.series)
	return out
}

// Len reports the shared window length. All windows advance together, so any
// one of them answers for the set.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.windows[s.series[0]].Len()
}
