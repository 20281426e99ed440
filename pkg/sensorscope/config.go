package sensorscope

import (
	"github.com/alx-cc/sensor-scope/internal/adapters/mqttconn"
	"github.com/alx-cc/sensor-scope/internal/adapters/sim"
	"github.com/alx-cc/sensor-scope/internal/app/config"
	"github.com/alx-cc/sensor-scope/internal/domain"
)

// Config re-exports the root configuration struct so downstream projects can
// construct or modify it programmatically.
type Config = config.Config

type (
	// MQTTConfig holds broker + topic details.
	MQTTConfig = mqttconn.Config
	// ViewConfig controls window capacity, refresh period and idle threshold.
	ViewConfig = config.ViewConfig
	// MetricsConfig configures the metrics HTTP server.
	MetricsConfig = config.MetricsConfig
	// SimConfig configures the synthetic sensor feed.
	SimConfig = sim.FeedConfig

	// Frame is one consistent snapshot of every series plus freshness.
	Frame = domain.Frame
	// Freshness classifies the feed as never-received, fresh or stale.
	Freshness = domain.Freshness
	// FeedState is the discriminant inside Freshness.
	FeedState = domain.FeedState
	// RawMessage is one undecoded payload from a message source.
	RawMessage = domain.RawMessage
)

// Feed states, re-exported for switches on Frame.Freshness.State.
const (
	FeedNeverReceived = domain.FeedNeverReceived
	FeedFresh         = domain.FeedFresh
	FeedStale         = domain.FeedStale
)

// DefaultSeries returns the configured series names in wire order.
func DefaultSeries() []string { return domain.DefaultSeries() }

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}

// DefaultConfig returns a configuration pointing at a local broker.
func DefaultConfig() *Config {
	return config.Default()
}
