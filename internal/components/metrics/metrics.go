// Package metrics keeps the gauges describing a single check-in run, they are
// written to a node_exporter textfile since the process does not live long
// enough to be scraped.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "zhuimi_checkin"

// Stages a run can end in.
var Stages = []string{"config", "login", "complete"}

type Recorder struct {
	registry      *prometheus.Registry
	lastRun       prometheus.Gauge
	stage         *prometheus.GaugeVec
	success       prometheus.Gauge
	remainingDays prometheus.Gauge
	counts        *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished at.",
		}),
		stage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stage",
			Help:      "1 for the stage the last run ended in, 0 for the others.",
		}, []string{"stage"}),
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "success",
			Help:      "1 if the last check-in was accepted by the site.",
		}),
		remainingDays: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remaining_days",
			Help:      "Days left until the subscription expires, -1 if unknown.",
		}),
		counts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "count",
			Help:      "Counts reported through telemetry.",
		}, []string{"id"}),
	}
	r.registry.MustRegister(r.lastRun, r.stage, r.success, r.remainingDays, r.counts)
	r.remainingDays.Set(-1)
	return r
}

// ObserveRun records how a run ended.
func (r *Recorder) ObserveRun(at time.Time, stage string, success bool) {
	r.lastRun.Set(float64(at.Unix()))
	for _, s := range Stages {
		value := 0.0
		if s == stage {
			value = 1
		}
		r.stage.WithLabelValues(s).Set(value)
	}
	if success {
		r.success.Set(1)
	} else {
		r.success.Set(0)
	}
}

func (r *Recorder) ObserveRemainingDays(days int) {
	r.remainingDays.Set(float64(days))
}

func (r *Recorder) ObserveCount(id string, count int64) {
	r.counts.WithLabelValues(id).Set(float64(count))
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile atomically writes every metric to path in the prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

// TelemetryAPI mirrors telemetry counts into the recorder, every other report is dropped.
type TelemetryAPI struct {
	Recorder *Recorder
}

func (TelemetryAPI) ReportBroken(string, ...any)  {}
func (TelemetryAPI) ReportWarning(string, ...any) {}
func (TelemetryAPI) ReportInfo(string, ...any)    {}
func (TelemetryAPI) ReportDebug(string, ...any)   {}
func (TelemetryAPI) DebugEnabled() bool            { return false }

func (t TelemetryAPI) ReportCount(id string, count int64) {
	t.Recorder.ObserveCount(id, count)
}
