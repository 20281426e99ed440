package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alx-cc/sensor-scope/internal/adapters/mqttconn"
	"github.com/alx-cc/sensor-scope/internal/adapters/sim"
)

type Config struct {
	MQTT    mqttconn.Config `yaml:"mqtt"`
	View    ViewConfig      `yaml:"view"`
	Metrics MetricsConfig   `yaml:"metrics"`
	Sim     sim.FeedConfig  `yaml:"sim"`
}

type ViewConfig struct {
	WindowCapacity int           `yaml:"window_capacity"`
	RefreshPeriod  time.Duration `yaml:"refresh_period"`
	IdleThreshold  time.Duration `yaml:"idle_threshold"`
	ClearScreen    bool          `yaml:"clear_screen"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns a ready-to-run configuration pointing at a local broker.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return &cfg
}

// Load reads YAML from disk, then layers env overrides (MQTT_BROKER,
// MQTT_PORT, MQTT_TOPIC) and defaults on top, matching how the original
// field tooling was pointed at ad-hoc brokers.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	c.MQTT.ApplyDefaults()
	c.Sim.ApplyDefaults()

	if c.View.WindowCapacity == 0 {
		c.View.WindowCapacity = 300
	}
	if c.View.RefreshPeriod == 0 {
		c.View.RefreshPeriod = 250 * time.Millisecond
	}
	if c.View.IdleThreshold == 0 {
		c.View.IdleThreshold = 5 * time.Second
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9100"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		c.MQTT.BrokerHost = v
	}
	if v := os.Getenv("MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MQTT.BrokerPort = port
		}
	}
	if v := os.Getenv("MQTT_TOPIC"); v != "" {
		c.MQTT.Topic = v
	}
}

func (c *Config) validate() error {
	if err := c.MQTT.Validate(); err != nil {
		return fmt.Errorf("mqtt config: %w", err)
	}
	if c.View.WindowCapacity < 1 {
		return fmt.Errorf("view.window_capacity must be at least 1")
	}
	if c.View.RefreshPeriod <= 0 {
		return fmt.Errorf("view.refresh_period must be positive")
	}
	if c.View.IdleThreshold <= 0 {
		return fmt.Errorf("view.idle_threshold must be positive")
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required")
	}
	return nil
}
