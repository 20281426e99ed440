package mqttconn

import (
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/alx-cc/sensor-scope/internal/ports"
)

// Publisher is the outbound counterpart used by the simulator feed. It shares
// Config with Source so a loopback demo needs a single yaml block.
type Publisher struct {
	cfg    Config
	obs    ports.Observability
	client mqtt.Client
}

// NewPublisher validates cfg and returns an unconnected Publisher.
func NewPublisher(cfg Config, obs ports.Observability) (*Publisher, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mqtt config: %w", err)
	}
	if obs == nil {
		obs = ports.NopObs{}
	}
	return &Publisher{cfg: cfg, obs: obs}, nil
}

// Connect dials the broker and blocks up to the configured timeout.
func (p *Publisher) Connect() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(p.cfg.BrokerURI())
	opts.SetClientID(fmt.Sprintf("%s-pub-%s", p.cfg.ClientID, uuid.NewString()[:8]))
	opts.SetKeepAlive(p.cfg.KeepAlive)
	opts.SetAutoReconnect(true)

	p.client = mqtt.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(p.cfg.ConnectTimeout) {
		return fmt.Errorf("mqtt publisher: no connection within %s", p.cfg.ConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt publisher connect: %w", err)
	}
	p.obs.LogInfo("mqtt_publisher_connected", ports.Field{Key: "broker", Value: p.cfg.BrokerURI()})
	return nil
}

// Publish sends one payload to the configured topic.
func (p *Publisher) Publish(payload []byte) error {
	if p.client == nil {
		return fmt.Errorf("mqtt publisher: not connected")
	}
	token := p.client.Publish(p.cfg.Topic, p.cfg.QoS, false, payload)
	if p.cfg.QoS > 0 {
		if !token.WaitTimeout(5 * time.Second) {
			return fmt.Errorf("mqtt publisher: publish timed out")
		}
	}
	return token.Error()
}

// Close releases the broker connection.
func (p *Publisher) Close() {
	if p.client != nil {
		p.client.Disconnect(250)
		p.client = nil
	}
}
