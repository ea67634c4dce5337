package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder holds the per-run gauges of a single env-fetcher invocation.
// It owns a private registry so only these series are pushed.
type Recorder struct {
	registry *prometheus.Registry

	LastRunSuccess     prometheus.Gauge
	LastRunDuration    prometheus.Gauge
	LastRunEntries     prometheus.Gauge
	LastSuccessSeconds prometheus.Gauge
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		LastRunSuccess: factory.NewGauge(prometheus.GaugeOpts{
			Name: "env_fetcher_last_run_success",
			Help: "1 if the last run wrote the env file, 0 otherwise.",
		}),
		LastRunDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "env_fetcher_last_run_duration_seconds",
			Help: "Duration of the last run in seconds (retrieve, format and write).",
		}),
		LastRunEntries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "env_fetcher_last_run_entries",
			Help: "Number of KEY=VALUE lines written by the last run.",
		}),
		LastSuccessSeconds: factory.NewGauge(prometheus.GaugeOpts{
			Name: "env_fetcher_last_success_timestamp_seconds",
			Help: "Unix time of the last successful run.",
		}),
	}
}

// ObserveRun records the outcome of a run that started at start.
// The nil Recorder is valid and records nothing.
func (r *Recorder) ObserveRun(start time.Time, entries int, err error) {
	if r == nil {
		return
	}
	r.LastRunDuration.Set(time.Since(start).Seconds())
	if err != nil {
		r.LastRunSuccess.Set(0)
		return
	}
	r.LastRunSuccess.Set(1)
	r.LastRunEntries.Set(float64(entries))
	r.LastSuccessSeconds.SetToCurrentTime()
}

// Gatherer exposes the recorder's registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// Push sends the recorded gauges to a Prometheus Pushgateway, replacing the
// previous push for the same job and secret.
func (r *Recorder) Push(ctx context.Context, url, job, secret string) error {
	err := push.New(url, job).
		Gatherer(r.registry).
		Grouping("secret", secret).
		PushContext(ctx)
	if err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
