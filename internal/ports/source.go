package ports

import "github.com/alx-cc/sensor-scope/internal/domain"

// MessageSource delivers raw payloads from an external feed (MQTT broker,
// replay file, simulator loopback). Transport, reconnection and TLS are the
// adapter's responsibility; the core only consumes RawMessage values.
type MessageSource interface {
	Start(out chan<- domain.RawMessage) error
	Stop() error
}
