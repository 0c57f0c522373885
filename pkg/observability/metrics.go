package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/stateprop/pkg/domain"
)

// Metrics holds the Prometheus collectors fed by the engine hooks.
type Metrics struct {
	Cycles          *prometheus.CounterVec
	Commands        *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	Failures        *prometheus.CounterVec
	ShrinkTrials    *prometheus.CounterVec
	ShrinkLength    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stateprop_cycles_total",
				Help: "Completed check cycles by outcome",
			},
			[]string{"model", "outcome"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stateprop_commands_total",
				Help: "Executed commands, shrink trials included",
			},
			[]string{"model", "command"},
		),
		CommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stateprop_command_duration_seconds",
				Help:    "Duration of command execution",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
			[]string{"model", "command"},
		),
		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stateprop_failures_total",
				Help: "Original failures found by kind",
			},
			[]string{"model", "kind"},
		),
		ShrinkTrials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stateprop_shrink_trials_total",
				Help: "Shrink oracle runs by phase and verdict",
			},
			[]string{"model", "phase", "accepted"},
		),
		ShrinkLength: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stateprop_shrink_length",
				Help: "Sequence length after the last completed shrink phase",
			},
			[]string{"model", "phase"},
		),
	}

	for _, c := range []prometheus.Collector{m.Cycles, m.Commands, m.CommandDuration, m.Failures, m.ShrinkTrials, m.ShrinkLength} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register metric: %w", err)
		}
	}
	return m, nil
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCycleEnd: func(_ context.Context, e *domain.CycleEvent) {
			outcome := "passed"
			if !e.Passed {
				outcome = "failed"
			}
			m.Cycles.WithLabelValues(e.Model, outcome).Inc()
		},
		OnCommand: func(_ context.Context, e *domain.CommandEvent) {
			m.Commands.WithLabelValues(e.Model, e.Command).Inc()
			m.CommandDuration.WithLabelValues(e.Model, e.Command).Observe(e.Duration.Seconds())
		},
		OnFailure: func(_ context.Context, e *domain.FailureEvent) {
			kind := "unknown"
			if e.Failure != nil {
				kind = string(e.Failure.Kind)
			}
			m.Failures.WithLabelValues(e.Model, kind).Inc()
		},
		OnShrinkTrial: func(_ context.Context, e *domain.ShrinkEvent) {
			m.ShrinkTrials.WithLabelValues(e.Model, string(e.Phase), fmt.Sprint(e.Accepted)).Inc()
		},
		OnShrinkPhase: func(_ context.Context, e *domain.PhaseEvent) {
			m.ShrinkLength.WithLabelValues(e.Model, string(e.Phase)).Set(float64(e.After))
		},
	}
}
