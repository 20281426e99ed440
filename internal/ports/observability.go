package ports

type Observability interface {
	LogInfo(msg string, fields ...Field)
	LogError(msg string, err error, fields ...Field)
	LogCritical(msg string, err error, fields ...Field)

	IncCounter(name string, v float64)
	ObserveLatency(name string, seconds float64)

	SetGauge(name string, v float64)

	RecordDrop(topic string, payload []byte, err error)
}

type Field struct {
	Key   string
	Value any
}

// NopObs discards everything. Default for tests and embedding.
type NopObs struct{}

func (NopObs) LogInfo(string, ...Field)            {}
func (NopObs) LogError(string, error, ...Field)    {}
func (NopObs) LogCritical(string, error, ...Field) {}
func (NopObs) IncCounter(string, float64)          {}
func (NopObs) ObserveLatency(string, float64)      {}
func (NopObs) SetGauge(string, float64)            {}
func (NopObs) RecordDrop(string, []byte, error)    {}

var _ Observability = NopObs{}
