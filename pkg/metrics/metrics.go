package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	RESULT_SUCCESS = "success"
	RESULT_FAILURE = "failure"
)

// Metrics records the progress of installation runs.
type Metrics interface {
	ObserveStage(stage, result string, durationSeconds float64)
	IncInstallations(result string)
	IncExtractedResources(count int)
}

// Noop implements Metrics without emitting anything.
type Noop struct{}

func (Noop) ObserveStage(string, string, float64) {}
func (Noop) IncInstallations(string)              {}
func (Noop) IncExtractedResources(int)            {}

// Prom implements Metrics backed by a Prometheus registry.
type Prom struct {
	registry      *prometheus.Registry
	stages        *prometheus.HistogramVec
	installations *prometheus.CounterVec
	resources     prometheus.Counter
	once          sync.Once
}

var _ Metrics = (*Prom)(nil)

func NewProm(namespace string) *Prom {
	return &Prom{
		registry: prometheus.NewRegistry(),
		stages: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of installation stages",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}, []string{"stage", "result"}),
		installations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "installations_total",
			Help:      "Installation runs by result",
		}, []string{"result"}),
		resources: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extracted_resources_total",
			Help:      "Program resources extracted from dependencies",
		}),
	}
}

func (p *Prom) register() {
	p.once.Do(func() {
		p.registry.MustRegister(p.stages, p.installations, p.resources)
	})
}

func (p *Prom) Registry() *prometheus.Registry {
	p.register()
	return p.registry
}

func (p *Prom) ObserveStage(stage, result string, durationSeconds float64) {
	p.register()
	p.stages.WithLabelValues(stage, result).Observe(durationSeconds)
}

func (p *Prom) IncInstallations(result string) {
	p.register()
	p.installations.WithLabelValues(result).Inc()
}

func (p *Prom) IncExtractedResources(count int) {
	p.register()
	p.resources.Add(float64(count))
}

// WriteTextfile stores the gathered metrics in the text exposition
// format, suitable for the node exporter textfile collector.
func (p *Prom) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.Registry())
}
