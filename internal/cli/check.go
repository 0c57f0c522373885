package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/aretw0/stateprop"
	"github.com/aretw0/stateprop/internal/demo"
	"github.com/aretw0/stateprop/internal/presentation/tui"
	"github.com/aretw0/stateprop/pkg/config"
	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/aretw0/stateprop/pkg/observability"
	"github.com/aretw0/stateprop/pkg/ports"
	"github.com/aretw0/stateprop/pkg/report"
)

// session holds what one CLI invocation wires around the engine.
type session struct {
	opts     Options
	cfg      config.Config
	logger   *slog.Logger
	out      io.Writer
	registry *prometheus.Registry
	store    ports.CounterexampleStore
	engine   []stateprop.Option
	close    func() error
}

func newSession(opts Options, out io.Writer) (*session, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := createLogger(opts.LogOutput, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	store, closeStore, err := OpenStore(opts)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(registry)
	if err != nil {
		_ = closeStore()
		return nil, err
	}

	return &session{
		opts:     opts,
		cfg:      cfg,
		logger:   logger,
		out:      out,
		registry: registry,
		store:    store,
		close:    closeStore,
		engine: []stateprop.Option{
			stateprop.WithConfig(cfg),
			stateprop.WithStore(store),
			stateprop.WithLogger(logger),
			stateprop.WithLifecycleHooks(domain.ComposeHooks(
				observability.NewAuditHooks(logger),
				metrics.Hooks(),
			)),
		},
	}, nil
}

// Check runs the named demo models, or all of them when names is empty.
// It reports whether every model passed.
func Check(ctx context.Context, opts Options, names []string, out io.Writer) (bool, error) {
	models, err := selectModels(names)
	if err != nil {
		return false, err
	}

	s, err := newSession(opts, out)
	if err != nil {
		return false, err
	}
	defer func() { _ = s.close() }()

	if opts.Banner && !opts.JSON {
		tui.PrintBanner(out, stateprop.Version)
	}

	allPassed := true
	for _, m := range models {
		sum, err := m.Check(ctx, s.engine...)
		if err != nil {
			return false, fmt.Errorf("%s: %w", m.Name, err)
		}
		if err := s.print(sum); err != nil {
			return false, err
		}
		allPassed = allPassed && sum.Passed
	}

	if opts.Metrics {
		if err := s.printMetrics(); err != nil {
			return false, err
		}
	}
	return allPassed, nil
}

func selectModels(names []string) ([]demo.Model, error) {
	if len(names) == 0 {
		return demo.Models(), nil
	}
	out := make([]demo.Model, 0, len(names))
	for _, name := range names {
		m, err := demo.Lookup(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *session) print(sum stateprop.Summary) error {
	if s.opts.JSON {
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(sum)
	}

	tui.Verdict(s.out, sum.Model, sum.Passed, sum.Cycles)
	if sum.Passed || sum.Counterexample == nil {
		return nil
	}

	if !s.opts.Pretty {
		_, err := io.WriteString(s.out, report.Text(sum.Counterexample))
		return err
	}
	render, err := tui.NewRenderer(0)
	if err != nil {
		return err
	}
	rendered, err := render(report.Markdown(sum.Counterexample))
	if err != nil {
		return err
	}
	_, err = io.WriteString(s.out, rendered)
	return err
}

func (s *session) printMetrics() error {
	families, err := s.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(s.out, mf); err != nil {
			return err
		}
	}
	return nil
}
