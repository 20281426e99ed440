package sensorscope

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alx-cc/sensor-scope/internal/adapters/mqttconn"
	"github.com/alx-cc/sensor-scope/internal/adapters/observability"
	"github.com/alx-cc/sensor-scope/internal/adapters/render"
	"github.com/alx-cc/sensor-scope/internal/app/pipeline"
	"github.com/alx-cc/sensor-scope/internal/decode"
	"github.com/alx-cc/sensor-scope/internal/domain"
	"github.com/alx-cc/sensor-scope/internal/freshness"
	"github.com/alx-cc/sensor-scope/internal/ports"
	"github.com/alx-cc/sensor-scope/internal/store"
)

// ingestBuffer decouples the broker callback from the decode/append path.
const ingestBuffer = 1024

// MessageSource and Renderer re-export the core ports so embedders can plug
// their own transports and presentations.
type (
	MessageSource = ports.MessageSource
	Renderer      = ports.Renderer
	Observability = ports.Observability
)

// ViewerOption customizes the dependencies used by ViewerRuntime.
type ViewerOption func(*viewerOverrides)

type viewerOverrides struct {
	source   ports.MessageSource
	renderer ports.Renderer
	obs      ports.Observability
	clock    func() time.Time
}

// WithSource injects a custom message source (replay files, test feeds).
func WithSource(src MessageSource) ViewerOption {
	return func(o *viewerOverrides) { o.source = src }
}

// WithRenderer injects a custom renderer (TUI, plot, channel consumer).
func WithRenderer(r Renderer) ViewerOption {
	return func(o *viewerOverrides) { o.renderer = r }
}

// WithObservability plugs in a custom observability backend.
func WithObservability(obs Observability) ViewerOption {
	return func(o *viewerOverrides) { o.obs = obs }
}

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) ViewerOption {
	return func(o *viewerOverrides) { o.clock = now }
}

// NopObservability returns a backend that discards all telemetry. Passing it
// to WithObservability also disables the metrics HTTP server.
func NopObservability() Observability { return ports.NopObs{} }

// ViewerRuntime wires source → ingestor → store ← refresh → renderer and
// exposes lifecycle hooks for embedding the viewer inside any Go service.
type ViewerRuntime struct {
	cfg      *Config
	obs      ports.Observability
	store    *store.Store
	monitor  *freshness.Monitor
	source   ports.MessageSource
	renderer ports.Renderer
	ingestor *pipeline.Ingestor
	refresh  *pipeline.RefreshLoop
	clock    func() time.Time

	metricsSrv *http.Server

	mu      sync.Mutex
	cancel  context.CancelFunc
	doneCh  chan struct{}
	started bool
}

// NewViewerRuntime bootstraps the default adapters (MQTT source, text
// renderer, Prometheus observability). ViewerOption values override any of
// them.
func NewViewerRuntime(cfg *Config, opts ...ViewerOption) (*ViewerRuntime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	var overrides viewerOverrides
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	obs := overrides.obs
	var promObs *observability.PromObs
	if obs == nil {
		promObs = observability.NewPromObs()
		obs = promObs
	}

	series := domain.DefaultSeries()
	st, err := store.New(series, cfg.View.WindowCapacity)
	if err != nil {
		return nil, err
	}
	mon := freshness.NewMonitor(cfg.View.IdleThreshold)

	src := overrides.source
	if src == nil {
		src, err = mqttconn.NewSource(cfg.MQTT, obs)
		if err != nil {
			return nil, err
		}
	}

	rend := overrides.renderer
	if rend == nil {
		tr := render.NewTextRenderer(os.Stdout, series)
		tr.Clear = cfg.View.ClearScreen
		rend = tr
	}

	clock := overrides.clock

	rt := &ViewerRuntime{
		cfg:      cfg,
		obs:      obs,
		store:    st,
		monitor:  mon,
		source:   src,
		renderer: rend,
		ingestor: pipeline.NewIngestor(decode.New(series), st, mon, obs, clock),
		refresh:  pipeline.NewRefreshLoop(st, mon, rend, obs, cfg.View.RefreshPeriod, clock),
		clock:    clock,
	}
	if promObs != nil {
		rt.metricsSrv = metricsServer(cfg.Metrics.Addr, promObs)
	}
	return rt, nil
}

// Start launches the source, both pipelines and the metrics server, then
// returns. Call Run to block on a context instead.
func (v *ViewerRuntime) Start() error {
	v.mu.Lock()
	if v.started {
		v.mu.Unlock()
		return fmt.Errorf("viewer runtime already started")
	}
	v.started = true
	ctx, cancel := context.WithCancel(context.Background())
	v.cancel = cancel
	v.doneCh = make(chan struct{})
	v.mu.Unlock()

	in := make(chan domain.RawMessage, ingestBuffer)
	if err := v.source.Start(in); err != nil {
		cancel()
		return err
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		v.ingestor.Run(ctx, in)
	}()
	go func() {
		defer wg.Done()
		v.refresh.Run(ctx)
	}()
	go func() {
		wg.Wait()
		close(v.doneCh)
	}()

	if v.metricsSrv != nil {
		go func() {
			if err := v.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				v.obs.LogError("metrics_server_exited", err)
			}
		}()
	}
	return nil
}

// Run starts the runtime and blocks until the provided context is cancelled,
// then attempts a graceful shutdown.
func (v *ViewerRuntime) Run(ctx context.Context) error {
	if err := v.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return v.Shutdown(shutdownCtx)
}

// Shutdown stops both pipelines, the message source and the metrics server.
// Cancellation is a clean exit: in-flight appends finish, nothing is cleared.
func (v *ViewerRuntime) Shutdown(ctx context.Context) error {
	v.mu.Lock()
	cancel := v.cancel
	done := v.doneCh
	v.cancel = nil
	v.mu.Unlock()

	var errs []error

	if cancel != nil {
		cancel()
	}
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("pipelines did not stop: %w", ctx.Err()))
		}
	}

	if err := v.source.Stop(); err != nil {
		errs = append(errs, err)
	}

	if v.metricsSrv != nil {
		if err := v.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Snapshot returns the current frame on demand, independent of the refresh
// schedule, for embedders that poll instead of rendering.
func (v *ViewerRuntime) Snapshot() Frame {
	now := time.Now
	if v.clock != nil {
		now = v.clock
	}
	t := now()
	return Frame{
		Series:    v.store.SnapshotAll(),
		Freshness: v.monitor.Classify(t),
		TakenAt:   t,
	}
}

func metricsServer(addr string, obs *observability.PromObs) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &http.Server{Addr: addr, Handler: mux}
}
