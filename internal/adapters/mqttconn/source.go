// Package mqttconn adapts an MQTT broker to the core's MessageSource and
// publisher collaborator roles.
package mqttconn

import (
	"fmt"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/alx-cc/sensor-scope/internal/domain"
	"github.com/alx-cc/sensor-scope/internal/ports"
)

// Source subscribes to a single topic and forwards every payload to the
// ingest channel. Reconnection is delegated to paho's auto-reconnect; the
// subscription is re-established in the OnConnect handler so it survives a
// reconnect. Connection loss is surfaced through Observability only — buffered
// samples are never cleared, stale data beats no data.
type Source struct {
	cfg Config
	obs ports.Observability

	mu      sync.Mutex
	client  mqtt.Client
	started bool
}

// NewSource validates cfg and returns an unstarted Source.
func NewSource(cfg Config, obs ports.Observability) (*Source, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("mqtt config: %w", err)
	}
	if obs == nil {
		obs = ports.NopObs{}
	}
	return &Source{cfg: cfg, obs: obs}, nil
}

// Start connects to the broker and begins delivering messages to out. The
// send into out never blocks: if the ingest side cannot keep up, the message
// is dropped and counted rather than stalling the network callback.
func (s *Source) Start(out chan<- domain.RawMessage) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("mqtt source already started")
	}
	s.mu.Unlock()

	handler := func(_ mqtt.Client, msg mqtt.Message) {
		select {
		case out <- domain.RawMessage{Topic: msg.Topic(), Payload: msg.Payload()}:
		default:
			s.obs.IncCounter("scope_source_drops_total", 1)
		}
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.cfg.BrokerURI())
	opts.SetClientID(fmt.Sprintf("%s-%s", s.cfg.ClientID, uuid.NewString()[:8]))
	opts.SetKeepAlive(s.cfg.KeepAlive)
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectRetryInterval(s.cfg.RetryInterval)
	opts.SetMaxReconnectInterval(30 * time.Second)

	opts.OnConnect = func(c mqtt.Client) {
		s.obs.SetGauge("scope_connected", 1)
		s.obs.LogInfo("mqtt_connected",
			ports.Field{Key: "broker", Value: s.cfg.BrokerURI()},
			ports.Field{Key: "topic", Value: s.cfg.Topic})
		token := c.Subscribe(s.cfg.Topic, s.cfg.QoS, handler)
		token.Wait()
		if err := token.Error(); err != nil {
			s.obs.LogCritical("mqtt_subscribe_failed", err,
				ports.Field{Key: "topic", Value: s.cfg.Topic})
		}
	}

	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		s.obs.SetGauge("scope_connected", 0)
		s.obs.LogError("mqtt_connection_lost", err,
			ports.Field{Key: "broker", Value: s.cfg.BrokerURI()})
	}

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(s.cfg.ConnectTimeout) {
		// ConnectRetry keeps dialing in the background; report but carry on.
		s.obs.LogError("mqtt_connect_pending", fmt.Errorf("no connection within %s", s.cfg.ConnectTimeout))
	} else if err := token.Error(); err != nil {
		s.obs.LogError("mqtt_connect_failed", err,
			ports.Field{Key: "broker", Value: s.cfg.BrokerURI()})
	}

	s.mu.Lock()
	s.client = client
	s.started = true
	s.mu.Unlock()
	return nil
}

// Stop unsubscribes and releases the broker connection.
func (s *Source) Stop() error {
	s.mu.Lock()
	client := s.client
	s.client = nil
	s.started = false
	s.mu.Unlock()

	if client == nil {
		return nil
	}
	if client.IsConnected() {
		token := client.Unsubscribe(s.cfg.Topic)
		token.WaitTimeout(time.Second)
	}
	client.Disconnect(250)
	return nil
}

var _ ports.MessageSource = (*Source)(nil)
