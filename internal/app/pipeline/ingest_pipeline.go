package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/alx-cc/sensor-scope/internal/decode"
	"github.com/alx-cc/sensor-scope/internal/domain"
	"github.com/alx-cc/sensor-scope/internal/freshness"
	"github.com/alx-cc/sensor-scope/internal/ports"
	"github.com/alx-cc/sensor-scope/internal/store"
)

// Ingestor is the producer side: it drains raw messages from the source
// channel, decodes them and appends accepted tuples into the store. A single
// malformed message never interrupts the stream; it is counted and dropped.
type Ingestor struct {
	dec   *decode.Decoder
	store *store.Store
	mon   *freshness.Monitor
	obs   ports.Observability
	now   func() time.Time
}

// NewIngestor wires the decoder, store and freshness monitor together.
// The clock is injectable for tests; nil means time.Now.
func NewIngestor(dec *decode.Decoder, st *store.Store, mon *freshness.Monitor, obs ports.Observability, now func() time.Time) *Ingestor {
	if now == nil {
		now = time.Now
	}
	if obs == nil {
		obs = ports.NopObs{}
	}
	return &Ingestor{dec: dec, store: st, mon: mon, obs: obs, now: now}
}

// Run consumes messages until ctx is cancelled or in is closed. It never
// blocks on anything but the channel receive; decode and append hold no lock
// across blocking calls.
func (i *Ingestor) Run(ctx context.Context, in <-chan domain.RawMessage) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			i.HandleMessage(msg)
		}
	}
}

// HandleMessage processes one raw payload: decode, append, record freshness.
// Decode failures are dropped silently apart from a counter. A schema
// mismatch is also a drop, but logged, since it means decoder and store
// configurations disagree.
func (i *Ingestor) HandleMessage(msg domain.RawMessage) {
	values, err := i.dec.Decode(msg.Payload)
	if err != nil {
		i.obs.IncCounter("scope_decode_failures_total", 1)
		i.obs.RecordDrop(msg.Topic, msg.Payload, err)
		return
	}

	if err := i.store.AppendAll(values); err != nil {
		if errors.Is(err, store.ErrSchemaMismatch) {
			i.obs.IncCounter("scope_schema_mismatches_total", 1)
			i.obs.LogError("schema_mismatch_drop", err, ports.Field{Key: "topic", Value: msg.Topic})
			return
		}
		i.obs.LogError("store_append_failed", err)
		return
	}

	i.mon.RecordSuccess(i.now())
	i.obs.IncCounter("scope_samples_ingested_total", 1)
	i.obs.SetGauge("scope_window_len", float64(i.store.Len()))
}
