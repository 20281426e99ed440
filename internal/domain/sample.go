package domain

import "time"

// Series names in the declared wire order. Payloads carry one value per
// series, comma-separated, in exactly this order.
const (
	SeriesTemperature    = "temperature"
	SeriesTemperatureAvg = "temperature_avg"
	SeriesPressure       = "pressure"
	SeriesPressureAvg    = "pressure_avg"
)

// DefaultSeries returns the configured series set in wire order.
func DefaultSeries() []string {
	return []string{
		SeriesTemperature,
		SeriesTemperatureAvg,
		SeriesPressure,
		SeriesPressureAvg,
	}
}

// RawMessage is one inbound payload as delivered by the message source,
// before decoding.
type RawMessage struct {
	Topic   string
	Payload []byte
}

// FeedState classifies how recently the feed produced an accepted sample.
type FeedState int

const (
	// FeedNeverReceived means no sample has ever been accepted.
	FeedNeverReceived FeedState = iota
	// FeedFresh means the last accepted sample is within the idle threshold.
	FeedFresh
	// FeedStale means the feed has been silent for longer than the threshold.
	FeedStale
)

func (s FeedState) String() string {
	switch s {
	case FeedFresh:
		return "fresh"
	case FeedStale:
		return "stale"
	default:
		return "never_received"
	}
}

// Freshness is the classification handed to the renderer. Idle is only
// meaningful when State != FeedNeverReceived.
type Freshness struct {
	State FeedState
	Idle  time.Duration
}

// Frame is one consistent point-in-time view of every series window plus the
// feed classification, produced once per refresh tick.
type Frame struct {
	Series    map[string][]float64
	Freshness Freshness
	TakenAt   time.Time
}
