package pipeline

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds Prometheus metrics for the pipeline subsystem.
type Metrics struct {
	RunsTotal    *prometheus.CounterVec
	RunDuration  *prometheus.HistogramVec
	StepAttempts *prometheus.HistogramVec
	StepDuration *prometheus.HistogramVec
	SubmitsTotal *prometheus.CounterVec
}

// NewMetrics registers and returns pipeline metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sift_runs_total",
			Help: "Total analysis runs by terminal status.",
		}, []string{"status"}),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sift_run_duration_seconds",
			Help:    "Duration of analysis runs in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 0.1s .. ~51s
		}, []string{"status"}),
		StepAttempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sift_step_attempts",
			Help:    "Attempts used per pipeline step.",
			Buckets: prometheus.LinearBuckets(1, 1, 8), // 1 .. 8
		}, []string{"step"}),
		StepDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sift_step_duration_seconds",
			Help:    "Duration of pipeline steps in seconds, retries included.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms .. ~25s
		}, []string{"step", "outcome"}),
		SubmitsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sift_submits_total",
			Help: "Total feedback submissions by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.RunsTotal,
		m.RunDuration,
		m.StepAttempts,
		m.StepDuration,
		m.SubmitsTotal,
	)

	return m
}

// Hooks returns an EngineHooks that increments the corresponding metrics.
func (m *Metrics) Hooks() EngineHooks {
	return EngineHooks{
		OnStep: func(step Step, attempts int, duration float64, err error) {
			outcome := "success"
			if err != nil {
				outcome = "error"
			}
			m.StepAttempts.WithLabelValues(string(step)).Observe(float64(attempts))
			m.StepDuration.WithLabelValues(string(step), outcome).Observe(duration)
		},
		OnComplete: func(e *CompleteEvent) {
			m.RunsTotal.WithLabelValues(string(e.Status)).Inc()
			m.RunDuration.WithLabelValues(string(e.Status)).Observe(e.Duration)
		},
	}
}
