// Package render provides a terminal renderer for refresh frames. Anything
// fancier (plots, TUIs, web UIs) plugs in through the same Renderer port.
package render

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/alx-cc/sensor-scope/internal/domain"
	"github.com/alx-cc/sensor-scope/internal/ports"
)

// TextRenderer prints one block per frame: a status line followed by a
// min/max/last summary per series in declared order.
type TextRenderer struct {
	mu     sync.Mutex
	w      io.Writer
	series []string
	// Clear redraws in place with an ANSI home+erase instead of scrolling.
	Clear bool
}

// NewTextRenderer renders to w, listing series in the given order.
func NewTextRenderer(w io.Writer, series []string) *TextRenderer {
	names := make([]string, len(series))
	copy(names, series)
	return &TextRenderer{w: w, series: names}
}

func (r *TextRenderer) Name() string { return "text" }

// RenderFrame writes the frame summary. Write errors bubble up so the
// refresh loop can log them.
func (r *TextRenderer) RenderFrame(f domain.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var b strings.Builder
	if r.Clear {
		b.WriteString("\033[H\033[2J")
	}
	b.WriteString(statusLine(f.Freshness))
	b.WriteByte('\n')

	for _, name := range r.series {
		values := f.Series[name]
		if len(values) == 0 {
			fmt.Fprintf(&b, "  %-16s (no data)\n", name)
			continue
		}
		lo, hi := values[0], values[0]
		for _, v := range values[1:] {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		fmt.Fprintf(&b, "  %-16s last=%9.2f  min=%9.2f  max=%9.2f  n=%d\n",
			name, values[len(values)-1], lo, hi, len(values))
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func statusLine(fr domain.Freshness) string {
	switch fr.State {
	case domain.FeedNeverReceived:
		return "feed: waiting for data"
	case domain.FeedStale:
		return fmt.Sprintf("feed: stale, idle %.1fs", fr.Idle.Seconds())
	default:
		return "feed: live"
	}
}

var _ ports.Renderer = (*TextRenderer)(nil)
