// Package metrics exposes Prometheus instrumentation for the studio.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/fx"
)

// Module provides the registry and the studio metrics.
var Module = fx.Module("metrics",
	fx.Provide(
		fx.Annotate(
			NewRegistry,
			fx.As(fx.Self()),
			fx.As(new(prometheus.Registerer)),
		),
		New,
	),
)

// NewRegistry creates a registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// Metrics holds the studio collectors.
type Metrics struct {
	jobs          *prometheus.CounterVec
	faults        *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	renderSeconds prometheus.Histogram
	wavBytes      prometheus.Histogram
	scripts       *prometheus.CounterVec
	speech        *prometheus.CounterVec
	previews      prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		jobs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "adstudio_mastering_jobs_total",
			Help: "Mastering jobs by mode and outcome",
		}, []string{"mode", "outcome"}),
		faults: f.NewCounterVec(prometheus.CounterOpts{
			Name: "adstudio_mastering_faults_total",
			Help: "Mastering faults by kind",
		}, []string{"kind"}),
		stageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "adstudio_mastering_stage_seconds",
			Help:    "Time spent in each mastering stage",
			Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"stage"}),
		renderSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "adstudio_offline_render_seconds",
			Help:    "Wall time of offline renders",
			Buckets: prometheus.DefBuckets,
		}),
		wavBytes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "adstudio_wav_bytes",
			Help:    "Size of exported WAV files",
			Buckets: prometheus.ExponentialBuckets(1<<18, 2, 8),
		}),
		scripts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "adstudio_script_generations_total",
			Help: "Script generation requests by status",
		}, []string{"status"}),
		speech: f.NewCounterVec(prometheus.CounterOpts{
			Name: "adstudio_speech_requests_total",
			Help: "Speech synthesis requests by status",
		}, []string{"status"}),
		previews: f.NewGauge(prometheus.GaugeOpts{
			Name: "adstudio_active_previews",
			Help: "Live previews currently playing",
		}),
	}
}

// RecordJob counts a finished job. outcome is "ready" or "failed".
func (m *Metrics) RecordJob(mode, outcome string) {
	if m == nil {
		return
	}
	m.jobs.WithLabelValues(mode, outcome).Inc()
}

// RecordFault counts a fault of the given kind.
func (m *Metrics) RecordFault(kind string) {
	if m == nil {
		return
	}
	m.faults.WithLabelValues(kind).Inc()
}

// ObserveStage records the time spent in stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveRender records an offline render and the resulting file size.
func (m *Metrics) ObserveRender(d time.Duration, wavBytes int) {
	if m == nil {
		return
	}
	m.renderSeconds.Observe(d.Seconds())
	m.wavBytes.Observe(float64(wavBytes))
}

// RecordScripts counts a script generation call.
func (m *Metrics) RecordScripts(success bool) {
	if m == nil {
		return
	}
	m.scripts.WithLabelValues(status(success)).Inc()
}

// RecordSpeech counts a speech synthesis call.
func (m *Metrics) RecordSpeech(success bool) {
	if m == nil {
		return
	}
	m.speech.WithLabelValues(status(success)).Inc()
}

// PreviewStarted and PreviewEnded track live previews.
func (m *Metrics) PreviewStarted() {
	if m == nil {
		return
	}
	m.previews.Inc()
}

func (m *Metrics) PreviewEnded() {
	if m == nil {
		return
	}
	m.previews.Dec()
}

func status(ok bool) string {
	if ok {
		return "success"
	}

	return "error"
}
