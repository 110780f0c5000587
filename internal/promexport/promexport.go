// Package promexport publishes scheduler metrics to Prometheus.
//
// The report resets the per-epoch counters, so the exporter takes counter
// deltas from the lifetime arrays in metrics.Metrics and publishes the
// epoch maxima as gauges.
package promexport

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"neo/neoui/kernel"
	"neo/neoui/metrics"
)

// Tasks is the read-only view of the scheduler the exporter samples.
type Tasks interface {
	Slots() int
	Info(kernel.SlotID) *kernel.Info
	Metrics() *metrics.Metrics
}

// Bus is the read-only view of the message bus.
type Bus interface {
	Allocated() int
	Pending(ch int) int
	Dropped(ch int) uint32
}

// Exporter owns a private registry so several can coexist in tests.
type Exporter struct {
	reg *prometheus.Registry

	runs        *prometheus.CounterVec
	maxStack    *prometheus.GaugeVec
	maxDuration *prometheus.GaugeVec
	budget      *prometheus.GaugeVec
	overBudget  *prometheus.CounterVec
	pending     *prometheus.GaugeVec
	dropped     *prometheus.CounterVec

	lastRuns      [metrics.MaxTasks]uint32
	lastOverTime  [metrics.MaxTasks]uint32
	lastOverStack [metrics.MaxTasks]uint32
	lastDropped   [8]uint32
}

// New registers the metric families.
func New() *Exporter {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Exporter{
		reg: reg,
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "neo_task_runs_total",
			Help: "Task invocations.",
		}, []string{"task"}),
		maxStack: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "neo_task_max_stack_bytes",
			Help: "Highest stack usage seen in the current report epoch.",
		}, []string{"task"}),
		maxDuration: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "neo_task_max_duration_us",
			Help: "Longest run in the current report epoch, in microseconds.",
		}, []string{"task"}),
		budget: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "neo_task_budget",
			Help: "Declared task budgets.",
		}, []string{"task", "kind"}),
		overBudget: f.NewCounterVec(prometheus.CounterOpts{
			Name: "neo_task_over_budget_total",
			Help: "Runs over the time budget, and rises of the stack high-water mark over the stack budget.",
		}, []string{"task", "kind"}),
		pending: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "neo_bus_pending",
			Help: "Messages queued on a bus channel.",
		}, []string{"channel"}),
		dropped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "neo_bus_dropped_total",
			Help: "Messages dropped because a bus channel was full.",
		}, []string{"channel"}),
	}
}

// Registry returns the exporter's registry.
func (e *Exporter) Registry() *prometheus.Registry { return e.reg }

// Handler serves the registry in the Prometheus text format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{Registry: e.reg})
}

// Publish samples the task counters. It must run on the scheduler's
// goroutine, between ticks.
func (e *Exporter) Publish(t Tasks) {
	m := t.Metrics()
	for i := 0; i < t.Slots() && i < metrics.MaxTasks; i++ {
		info := t.Info(kernel.SlotID(i))
		if info == nil {
			continue
		}
		name := info.Name.String()

		e.runs.WithLabelValues(name).Add(float64(m.TotalRuns[i] - e.lastRuns[i]))
		e.lastRuns[i] = m.TotalRuns[i]
		e.overBudget.WithLabelValues(name, "time").Add(float64(m.OverTime[i] - e.lastOverTime[i]))
		e.lastOverTime[i] = m.OverTime[i]
		e.overBudget.WithLabelValues(name, "stack").Add(float64(m.OverStack[i] - e.lastOverStack[i]))
		e.lastOverStack[i] = m.OverStack[i]

		e.maxStack.WithLabelValues(name).Set(float64(m.MaxStack[i]))
		e.maxDuration.WithLabelValues(name).Set(float64(m.MaxDurationUS[i]))
		e.budget.WithLabelValues(name, "time_us").Set(float64(info.TimeBudgetUS))
		e.budget.WithLabelValues(name, "stack_bytes").Set(float64(info.MemBudgetBytes))
	}
}

// PublishBus samples queue depths and drop counters.
func (e *Exporter) PublishBus(b Bus) {
	for ch := 0; ch < b.Allocated() && ch < len(e.lastDropped); ch++ {
		label := strconv.Itoa(ch)
		e.pending.WithLabelValues(label).Set(float64(b.Pending(ch)))
		cur := b.Dropped(ch)
		e.dropped.WithLabelValues(label).Add(float64(cur - e.lastDropped[ch]))
		e.lastDropped[ch] = cur
	}
}

// Serve listens on addr until ctx is done.
func (e *Exporter) Serve(ctx context.Context, addr string, log zerolog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", e.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("metrics exporter listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
