package pipeline

import (
	"bytes"
	"errors"

	workout "fitness-tracker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

type runMetrics struct {
	registry  *prometheus.Registry
	processed *prometheus.CounterVec
	failed    *prometheus.CounterVec
	calories  prometheus.Counter
	distance  prometheus.Counter
}

func newRunMetrics() *runMetrics {
	m := &runMetrics{
		registry: prometheus.NewRegistry(),
		processed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitness_tracker",
			Subsystem: "batch",
			Name:      "trainings_processed_total",
			Help:      "Number of sensor packages turned into training summaries.",
		}, []string{"training_type"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitness_tracker",
			Subsystem: "batch",
			Name:      "trainings_failed_total",
			Help:      "Number of sensor packages rejected, by reason.",
		}, []string{"reason"}),
		calories: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitness_tracker",
			Subsystem: "batch",
			Name:      "calories_kcal_total",
			Help:      "Calories burned across every summarised training.",
		}),
		distance: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fitness_tracker",
			Subsystem: "batch",
			Name:      "distance_km_total",
			Help:      "Distance covered across every summarised training.",
		}),
	}
	m.registry.MustRegister(m.processed, m.failed, m.calories, m.distance)
	return m
}

func (m *runMetrics) observe(s Summary) {
	m.processed.WithLabelValues(s.TrainingType).Inc()
	m.calories.Add(s.CaloriesKcal)
	m.distance.Add(s.DistanceKM)
}

func (m *runMetrics) reject(reason string) {
	m.failed.WithLabelValues(reason).Inc()
}

// textfile renders the registry in the Prometheus text exposition format.
func (m *runMetrics) textfile() ([]byte, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, workout.ErrUnknownWorkout):
		return "unknown_workout"
	case errors.Is(err, workout.ErrArity):
		return "arity"
	case errors.Is(err, workout.ErrInvalidInput):
		return "invalid_input"
	default:
		return "other"
	}
}
