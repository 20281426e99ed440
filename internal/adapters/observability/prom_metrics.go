package observability

import (
	"fmt"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alx-cc/sensor-scope/internal/ports"
)

// PromObs implements the Observability port with prometheus collectors and
// the standard logger. It owns its registry so multiple instances (tests,
// embedded viewers) never fight over global registration.
type PromObs struct {
	registry *prometheus.Registry
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

func NewPromObs() *PromObs {
	ingested := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scope_samples_ingested_total",
		Help: "Samples decoded and appended into the series store.",
	})
	decodeFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scope_decode_failures_total",
		Help: "Payloads dropped because they failed to decode.",
	})
	schemaMismatches := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scope_schema_mismatches_total",
		Help: "Decoded tuples dropped because their key set disagreed with the store.",
	})
	sourceDrops := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scope_source_drops_total",
		Help: "Messages dropped at the source because the ingest channel was full.",
	})
	frames := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scope_frames_rendered_total",
		Help: "Frames handed to the renderer.",
	})
	simPublished := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "scope_sim_published_total",
		Help: "Frames published by the simulator feed.",
	})
	windowLen := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scope_window_len",
		Help: "Current shared length of the series windows.",
	})
	idle := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scope_feed_idle_seconds",
		Help: "Seconds since the last accepted sample.",
	})
	connected := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "scope_connected",
		Help: "1 while the broker connection is up.",
	})
	renderLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scope_render_latency_seconds",
		Help:    "Time spent inside the renderer per frame.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(ingested, decodeFailures, schemaMismatches, sourceDrops,
		frames, simPublished, windowLen, idle, connected, renderLatency)

	return &PromObs{
		registry: reg,
		counters: map[string]prometheus.Counter{
			"scope_samples_ingested_total":  ingested,
			"scope_decode_failures_total":   decodeFailures,
			"scope_schema_mismatches_total": schemaMismatches,
			"scope_source_drops_total":      sourceDrops,
			"scope_frames_rendered_total":   frames,
			"scope_sim_published_total":     simPublished,
		},
		gauges: map[string]prometheus.Gauge{
			"scope_window_len":        windowLen,
			"scope_feed_idle_seconds": idle,
			"scope_connected":         connected,
		},
		histos: map[string]prometheus.Observer{
			"scope_render_latency_seconds": renderLatency,
		},
	}
}

// Registry exposes the collectors for promhttp.
func (p *PromObs) Registry() *prometheus.Registry { return p.registry }

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	log.Printf("INFO: %s%s", msg, formatFields(fields))
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("ERROR: %s: %v%s", msg, err, formatFields(fields))
	}
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	if err != nil {
		log.Printf("CRITICAL: %s: %v%s", msg, err, formatFields(fields))
	}
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

// RecordDrop notes a dropped payload. The payload bytes themselves are not
// logged; a lossy feed can carry anything.
func (p *PromObs) RecordDrop(topic string, payload []byte, err error) {
	if err != nil {
		log.Printf("DROP topic=%s len=%d err=%v", topic, len(payload), err)
	}
}

func formatFields(fields []ports.Field) string {
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

var _ ports.Observability = (*PromObs)(nil)
