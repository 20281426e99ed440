package store

// Window is a fixed-capacity rolling history of one series. Appends are O(1);
// once full, each append evicts the oldest value. Window carries no lock of
// its own: Store serializes all access so cross-series appends stay atomic.
type Window struct {
	buf  []float64
	head int // index of the oldest value
	size int
}

// NewWindow creates an empty window holding at most capacity values.
func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = 1
	}
	return &Window{buf: make([]float64, capacity)}
}

// Append inserts v at the tail, evicting the oldest value when full.
func (w *Window) Append(v float64) {
	if w.size < len(w.buf) {
		w.buf[(w.head+w.size)%len(w.buf)] = v
		w.size++
		return
	}
	w.buf[w.head] = v
	w.head = (w.head + 1) % len(w.buf)
}

// Snapshot returns a copy of the current contents, oldest first.
func (w *Window) Snapshot() []float64 {
	out := make([]float64, w.size)
	for i := 0; i < w.size; i++ {
		out[i] = w.buf[(w.head+i)%len(w.buf)]
	}
	return out
}

// Len reports how many values the window currently holds.
func (w *Window) Len() int { return w.size }

// Cap reports the fixed capacity.
func (w *Window) Cap() int { return len(w.buf) }
