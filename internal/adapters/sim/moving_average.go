package sim

// MovingAverage is an O(1) running-sum average over the last n pushes,
// backed by a fixed ring. Window below 1 is clamped to 1.
type MovingAverage struct {
	buf   []float64
	head  int
	count int
	sum   float64
}

// NewMovingAverage creates an average over a window of n samples.
func NewMovingAverage(n int) *MovingAverage {
	if n < 1 {
		n = 1
	}
	return &MovingAverage{buf: make([]float64, n)}
}

// Push adds x and returns the current average.
func (m *MovingAverage) Push(x float64) float64 {
	if m.count < len(m.buf) {
		m.buf[m.head] = x
		m.sum += x
		m.count++
	} else {
		m.sum += x - m.buf[m.head]
		m.buf[m.head] = x
	}
	m.head = (m.head + 1) % len(m.buf)
	if m.count < len(m.buf) {
		return m.sum / float64(m.count)
	}
	return m.sum / float64(len(m.buf))
}

// Value returns the current average without pushing; zero before any push.
func (m *MovingAverage) Value() float64 {
	if m.count == 0 {
		return 0
	}
	return m.sum / float64(m.count)
}

// Len reports how many samples currently back the average.
func (m *MovingAverage) Len() int { return m.count }
