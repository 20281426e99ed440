package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/alx-cc/sensor-scope/internal/ports"
)

// FeedConfig controls the publishing schedule of the simulated sensor.
type FeedConfig struct {
	Sensor    SensorConfig  `yaml:"sensor"`
	Interval  time.Duration `yaml:"interval"`
	AvgWindow int           `yaml:"avg_window"`
}

func (c *FeedConfig) ApplyDefaults() {
	c.Sensor.ApplyDefaults()
	if c.Interval <= 0 {
		c.Interval = 250 * time.Millisecond
	}
	if c.AvgWindow <= 0 {
		c.AvgWindow = 32
	}
}

// PayloadPublisher is the outbound collaborator the feed writes to, satisfied
// by mqttconn.Publisher.
type PayloadPublisher interface {
	Publish(payload []byte) error
}

// Feed samples the simulated sensor on a fixed interval and publishes the
// four-field CSV frame the viewer decodes: temperature, temperature average,
// pressure, pressure average.
type Feed struct {
	cfg    FeedConfig
	sensor *Sensor
	avgT   *MovingAverage
	avgP   *MovingAverage
	pub    PayloadPublisher
	obs    ports.Observability
}

// NewFeed wires a sensor and its averages to a publisher.
func NewFeed(cfg FeedConfig, pub PayloadPublisher, obs ports.Observability) *Feed {
	cfg.ApplyDefaults()
	if obs == nil {
		obs = ports.NopObs{}
	}
	return &Feed{
		cfg:    cfg,
		sensor: NewSensor(cfg.Sensor),
		avgT:   NewMovingAverage(cfg.AvgWindow),
		avgP:   NewMovingAverage(cfg.AvgWindow),
		pub:    pub,
		obs:    obs,
	}
}

// Run publishes frames until ctx is cancelled. Publish errors are logged and
// the schedule keeps going; the broker may simply be restarting.
func (f *Feed) Run(ctx context.Context) error {
	ticker := time.NewTicker(f.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			payload := f.frame(now)
			if err := f.pub.Publish(payload); err != nil {
				f.obs.LogError("sim_publish_failed", err)
				continue
			}
			f.obs.IncCounter("scope_sim_published_total", 1)
		}
	}
}

func (f *Feed) frame(now time.Time) []byte {
	t, p := f.sensor.Read(now)
	ta := f.avgT.Push(t)
	pa := f.avgP.Push(p)
	return []byte(fmt.Sprintf("%.2f,%.2f,%.2f,%.2f", t, ta, p, pa))
}
