package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/cvss2/internal/cvss"
	"github.com/MikeSquared-Agency/cvss2/internal/scoring"
)

// Recorder counts parse and score outcomes on its own registry.
type Recorder struct {
	registry    *prometheus.Registry
	vectors     *prometheus.CounterVec
	parseErrors *prometheus.CounterVec
	stages      *prometheus.CounterVec
	overall     prometheus.Histogram
}

func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		vectors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cvss2_vectors_total",
			Help: "Vectors processed, by result (scored or invalid).",
		}, []string{"result"}),
		parseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cvss2_parse_errors_total",
			Help: "Rejected vectors, by error kind.",
		}, []string{"kind"}),
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cvss2_scores_total",
			Help: "Scored vectors, by the stage that produced the overall score and its severity.",
		}, []string{"stage", "severity"}),
		overall: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cvss2_overall_score",
			Help:    "Distribution of overall scores.",
			Buckets: []float64{0, 2, 4, 6, 7, 8, 9, 10},
		}),
	}
	r.registry.MustRegister(r.vectors, r.parseErrors, r.stages, r.overall)
	return r
}

// ObserveReport records a successfully scored vector.
func (r *Recorder) ObserveReport(rep scoring.Report) {
	r.vectors.WithLabelValues("scored").Inc()
	r.stages.WithLabelValues(string(rep.Stage), string(rep.Severity)).Inc()
	r.overall.Observe(rep.Overall)
}

// ObserveError records a rejected vector. Errors that are not parse errors
// are counted under kind "other".
func (r *Recorder) ObserveError(err error) {
	r.vectors.WithLabelValues("invalid").Inc()
	kind := "other"
	var pe *cvss.ParseError
	if errors.As(err, &pe) {
		kind = pe.Kind.String()
	}
	r.parseErrors.WithLabelValues(kind).Inc()
}

func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes the current values atomically to path in the
// node_exporter textfile collector format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
