package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/stateprop"
	"github.com/aretw0/stateprop/internal/demo"
	"github.com/aretw0/stateprop/pkg/domain"
)

// Replay loads a stored counterexample and reruns its cycle against the
// current build of the model. It reports whether the model now passes.
// Generation always uses the settings recorded with the counterexample; a
// warning is printed when the configuration disagrees with them.
func Replay(ctx context.Context, opts Options, id string, out io.Writer) (bool, error) {
	s, err := newSession(opts, out)
	if err != nil {
		return false, err
	}
	defer func() { _ = s.close() }()

	ce, err := s.store.Load(ctx, id)
	if err != nil {
		return false, fmt.Errorf("load %s: %w", id, err)
	}
	m, err := demo.Lookup(ce.Model)
	if err != nil {
		return false, err
	}

	if !opts.JSON {
		printSystemMessage(out, "Replaying %s (cycle seed %d)", ce.ID, ce.CycleSeed)
	}
	engineOpts := s.engine
	configured := domain.GenerationRecord{MaxCommands: s.cfg.MaxCommands, SelectionRetries: s.cfg.SelectionRetries}
	if recorded := ce.Generation; recorded.Differs(configured) {
		s.logger.Warn("replaying with recorded generation settings",
			"id", ce.ID,
			"max_commands", recorded.MaxCommands, "configured_max_commands", configured.MaxCommands,
			"selection_retries", recorded.SelectionRetries, "configured_selection_retries", configured.SelectionRetries)
		if !opts.JSON {
			printSystemMessage(out, "Warning: %s was recorded with max_commands=%d selection_retries=%d (configured %d and %d); using the recorded values",
				ce.ID, recorded.MaxCommands, recorded.SelectionRetries, configured.MaxCommands, configured.SelectionRetries)
		}
		engineOpts = append(engineOpts[:len(engineOpts):len(engineOpts)], generationOptions(recorded)...)
	}

	sum, err := m.Replay(ctx, ce.CycleSeed, engineOpts...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", m.Name, err)
	}
	return sum.Passed, s.print(sum)
}

// generationOptions applies the known fields of a recorded generation.
func generationOptions(r domain.GenerationRecord) []stateprop.Option {
	var opts []stateprop.Option
	if r.MaxCommands != 0 {
		opts = append(opts, stateprop.WithMaxCommands(r.MaxCommands))
	}
	if r.SelectionRetries != 0 {
		opts = append(opts, stateprop.WithSelectionRetries(r.SelectionRetries))
	}
	return opts
}
