package render

import (
	"strings"
	"testing"
	"time"

	"github.com/alx-cc/sensor-scope/internal/domain"
)

func TestTextRendererWaitingForData(t *testing.T) {
	var b strings.Builder
	r := NewTextRenderer(&b, domain.DefaultSeries())

	err := r.RenderFrame(domain.Frame{
		Series:    map[string][]float64{},
		Freshness: domain.Freshness{State: domain.FeedNeverReceived},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := b.String()
	if !strings.Contains(out, "waiting for data") {
		t.Fatalf("expected waiting banner, got:\n%s", out)
	}
	if !strings.Contains(out, "(no data)") {
		t.Fatalf("expected per-series no-data marker, got:\n%s", out)
	}
}

func TestTextRendererLiveFrame(t *testing.T) {
	var b strings.Builder
	r := NewTextRenderer(&b, domain.DefaultSeries())

	err := r.RenderFrame(domain.Frame{
		Series: map[string][]float64{
			"temperature":     {20, 22, 21},
			"temperature_avg": {21},
			"pressure":        {100, 103},
			"pressure_avg":    {101.5},
		},
		Freshness: domain.Freshness{State: domain.FeedFresh, Idle: time.Second},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	out := b.String()
	if !strings.Contains(out, "feed: live") {
		t.Fatalf("expected live banner, got:\n%s", out)
	}
	if !strings.Contains(out, "last=    21.00") || !strings.Contains(out, "min=    20.00") || !strings.Contains(out, "max=    22.00") {
		t.Fatalf("expected temperature summary, got:\n%s", out)
	}
	if !strings.Contains(out, "n=3") {
		t.Fatalf("expected sample count, got:\n%s", out)
	}
}

func TestTextRendererStaleFrame(t *testing.T) {
	var b strings.Builder
	r := NewTextRenderer(&b, []string{"temperature"})

	err := r.RenderFrame(domain.Frame{
		Series:    map[string][]float64{"temperature": {20}},
		Freshness: domain.Freshness{State: domain.FeedStale, Idle: 7300 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(b.String(), "stale, idle 7.3s") {
		t.Fatalf("expected stale banner with idle seconds, got:\n%s", b.String())
	}
}

func TestTextRendererClearEmitsAnsiPrefix(t *testing.T) {
	var b strings.Builder
	r := NewTextRenderer(&b, []string{"temperature"})
	r.Clear = true

	if err := r.RenderFrame(domain.Frame{Series: map[string][]float64{}}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(b.String(), "\033[H\033[2J") {
		t.Fatalf("expected ANSI clear prefix")
	}
}
