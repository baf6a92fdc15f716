// File: facade/offload.go
// Unified facade layer for hioload-offload.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Offload aggregates the event loop, the worker pool, the dispatcher, and
// the control plane behind a single facade. The host hands in its pipeline
// collaborator; the facade registers the suspendable stage handler and
// exposes lifecycle, variable lookup, and runtime introspection.

package facade

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/hioload-offload/adapters"
	"github.com/momentics/hioload-offload/api"
	"github.com/momentics/hioload-offload/control"
	"github.com/momentics/hioload-offload/internal/concurrency"
	"github.com/momentics/hioload-offload/internal/offload"
)

// Config holds parameters immutable per run.
type Config struct {
	NumWorkers        int           // Worker goroutines executing task bodies
	QueueCapacity     int           // Bound of the pool's task queue
	LoopBatchSize     int           // Callbacks drained per loop iteration
	LoopQueueCapacity int           // Capacity of the loop inbox
	ContextShards     int           // Shards of the request context store
	SleepStep         time.Duration // Real duration of one 100 ms work unit
	EnableMetrics     bool          // Whether to register Prometheus collectors
	EnableDebug       bool          // Whether to register debug probes
	MetricsNamespace  string        // Prometheus namespace for collectors
}

// DefaultConfig returns default configuration values.
func DefaultConfig() *Config {
	return &Config{
		NumWorkers:        4,
		QueueCapacity:     64,
		LoopBatchSize:     16,
		LoopQueueCapacity: 1024,
		ContextShards:     16,
		SleepStep:         100 * time.Millisecond,
		EnableMetrics:     true,
		EnableDebug:       true,
		MetricsNamespace:  "hioload_offload",
	}
}

// Offload is the main facade type.
type Offload struct {
	cfg        *Config
	loop       *concurrency.Loop
	pool       api.WorkerPool
	store      *offload.ContextStore
	dispatcher *offload.Dispatcher
	ctrl       *adapters.ControlAdapter
	registry   *prometheus.Registry

	startOnce sync.Once
	stopOnce  sync.Once
}

// New assembles the offload core and registers its stage handler with host.
func New(cfg *Config, host api.Host) (*Offload, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if host == nil {
		return nil, api.NewError(api.ErrCodeConfig, "host pipeline is required")
	}
	if cfg.NumWorkers <= 0 {
		return nil, api.NewError(api.ErrCodeConfig, "NumWorkers must be positive").
			WithContext("value", cfg.NumWorkers)
	}
	if cfg.QueueCapacity <= 0 {
		return nil, api.NewError(api.ErrCodeConfig, "QueueCapacity must be positive").
			WithContext("value", cfg.QueueCapacity)
	}

	loop, err := concurrency.NewLoop(cfg.LoopBatchSize, cfg.LoopQueueCapacity)
	if err != nil {
		return nil, errors.Wrap(err, "create event loop")
	}

	var registry *prometheus.Registry
	var poolMetrics *control.PoolMetrics
	if cfg.EnableMetrics {
		registry = prometheus.NewRegistry()
		poolMetrics = control.NewPoolMetrics(registry, cfg.MetricsNamespace)
	}

	pool, err := adapters.NewPoolAdapter(cfg.NumWorkers, cfg.QueueCapacity, poolMetrics)
	if err != nil {
		loop.Stop()
		return nil, err
	}

	store := offload.NewContextStore(cfg.ContextShards)
	dispatcher := offload.NewDispatcher(pool, host, loop, store)
	dispatcher.SetSleepStep(cfg.SleepStep)
	if poolMetrics != nil {
		dispatcher.SetResumeHook(poolMetrics.Resumes.Inc)
	}

	ctrl := adapters.NewControlAdapter()
	if err := ctrl.SetConfig(map[string]any{
		control.KeyNumWorkers:    cfg.NumWorkers,
		control.KeyQueueCapacity: cfg.QueueCapacity,
	}); err != nil {
		loop.Stop()
		pool.Close()
		return nil, err
	}

	o := &Offload{
		cfg:        cfg,
		loop:       loop,
		pool:       pool,
		store:      store,
		dispatcher: dispatcher,
		ctrl:       ctrl,
		registry:   registry,
	}
	if cfg.EnableDebug {
		o.registerProbes()
	}

	host.RegisterSuspendableStage(dispatcher.Suspend)
	return o, nil
}

// Start launches the event-loop goroutine. Idempotent.
func (o *Offload) Start() {
	o.startOnce.Do(func() {
		go o.loop.Run()
	})
}

// Stop shuts down the pool (draining queued tasks) and then the loop.
// Idempotent.
func (o *Offload) Stop() {
	o.stopOnce.Do(func() {
		o.pool.Close()
		o.loop.Stop()
	})
}

// Handler returns the suspendable stage handler for hosts that install it
// themselves rather than through RegisterSuspendableStage.
func (o *Offload) Handler() api.StageHandler {
	return o.dispatcher.Suspend
}

// Waker returns the loop's cross-thread scheduling primitive.
func (o *Offload) Waker() api.Waker {
	return o.loop
}

// Control returns the runtime control surface.
func (o *Offload) Control() api.Control {
	return o.ctrl
}

// Registry returns the Prometheus gatherer, or nil when metrics are disabled.
func (o *Offload) Registry() prometheus.Gatherer {
	if o.registry == nil {
		return nil
	}
	return o.registry
}

// LookupVar resolves a derived request variable.
func (o *Offload) LookupVar(req api.Request, v api.Var) api.VarValue {
	return o.dispatcher.LookupVar(req, v)
}

// Release drops the per-request context once the host finished the request.
func (o *Offload) Release(req api.Request) {
	o.dispatcher.Release(req)
}

// SetRandSource replaces the task input source, for deterministic embeddings.
func (o *Offload) SetRandSource(fn func() int64) {
	o.dispatcher.SetRandSource(fn)
}

// Stats refreshes the metrics registry from live counters and returns the
// combined snapshot.
func (o *Offload) Stats() map[string]any {
	for k, v := range o.pool.Stats() {
		o.ctrl.SetMetric("pool."+k, v)
	}
	for k, v := range o.dispatcher.Stats() {
		o.ctrl.SetMetric("dispatch."+k, v)
	}
	return o.ctrl.Stats()
}

func (o *Offload) registerProbes() {
	o.ctrl.RegisterDebugProbe("pool", func() any {
		return o.pool.Stats()
	})
	o.ctrl.RegisterDebugProbe("loop", func() any {
		return control.LoopProbe{
			Pending:   o.loop.Pending(),
			Processed: o.loop.Processed(),
		}
	})
	o.ctrl.RegisterDebugProbe("contexts", func() any {
		return control.ContextProbe{Live: o.store.Len()}
	})
}
