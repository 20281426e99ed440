package sensorscope

import (
	base "github.com/alx-cc/sensor-scope/pkg/sensorscope"
)

// Re-exported errors for convenience.
var ErrRendererClosed = base.ErrRendererClosed

// Type aliases so consumers can import github.com/alx-cc/sensor-scope directly.
type (
	Config        = base.Config
	MQTTConfig    = base.MQTTConfig
	ViewConfig    = base.ViewConfig
	MetricsConfig = base.MetricsConfig
	SimConfig     = base.SimConfig
	Frame         = base.Frame
	Freshness     = base.Freshness
	FeedState     = base.FeedState
	RawMessage    = base.RawMessage
	ViewerRuntime = base.ViewerRuntime
	ViewerOption  = base.ViewerOption
	MessageSource = base.MessageSource
	Renderer      = base.Renderer
	Observability = base.Observability
	FrameFunc     = base.FrameFunc
)

// Feed states.
const (
	FeedNeverReceived = base.FeedNeverReceived
	FeedFresh         = base.FeedFresh
	FeedStale         = base.FeedStale
)

// Config helpers.
func LoadConfig(path string) (*Config, error) { return base.LoadConfig(path) }
func DefaultConfig() *Config                  { return base.DefaultConfig() }
func DefaultSeries() []string                 { return base.DefaultSeries() }

// Viewer runtime and options.
func NewViewerRuntime(cfg *Config, opts ...ViewerOption) (*ViewerRuntime, error) {
	return base.NewViewerRuntime(cfg, opts...)
}

func WithSource(src MessageSource) ViewerOption { return base.WithSource(src) }
func WithRenderer(r Renderer) ViewerOption      { return base.WithRenderer(r) }
func WithObservability(obs Observability) ViewerOption {
	return base.WithObservability(obs)
}

// NopObservability returns a backend that discards all telemetry.
func NopObservability() Observability { return base.NopObservability() }

// Renderer adapters.
func NewCallbackRenderer(name string, fn FrameFunc) Renderer {
	return base.NewCallbackRenderer(name, fn)
}

func NewChannelRenderer(name string, buffer int) (Renderer, <-chan Frame, func()) {
	return base.NewChannelRenderer(name, buffer)
}
