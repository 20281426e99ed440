package mqttconn

import (
	"errors"
	"fmt"
	"time"
)

// Config captures the runtime details required to reach the broker.
type Config struct {
	BrokerHost     string        `yaml:"broker_host"`
	BrokerPort     int           `yaml:"broker_port"`
	Topic          string        `yaml:"topic"`
	ClientID       string        `yaml:"client_id"`
	QoS            byte          `yaml:"qos"`
	KeepAlive      time.Duration `yaml:"keep_alive"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	RetryInterval  time.Duration `yaml:"retry_interval"`
}

func (c *Config) ApplyDefaults() {
	if c.BrokerHost == "" {
		c.BrokerHost = "127.0.0.1"
	}
	if c.BrokerPort == 0 {
		c.BrokerPort = 1883
	}
	if c.Topic == "" {
		c.Topic = "sensors/demo/readings"
	}
	if c.ClientID == "" {
		c.ClientID = "sensor-scope"
	}
	if c.KeepAlive <= 0 {
		c.KeepAlive = 60 * time.Second
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = 2 * time.Second
	}
}

func (c *Config) Validate() error {
	if c.BrokerHost == "" {
		return errors.New("broker_host is required")
	}
	if c.BrokerPort <= 0 || c.BrokerPort > 65535 {
		return fmt.Errorf("broker_port %d is out of range", c.BrokerPort)
	}
	if c.Topic == "" {
		return errors.New("topic is required")
	}
	if c.QoS > 2 {
		return fmt.Errorf("qos %d is invalid", c.QoS)
	}
	return nil
}

// BrokerURI renders the tcp:// address paho expects.
func (c *Config) BrokerURI() string {
	return fmt.Sprintf("tcp://%s:%d", c.BrokerHost, c.BrokerPort)
}
