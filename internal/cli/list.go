package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/aretw0/stateprop/internal/demo"
)

// List prints the stored counterexamples.
func List(ctx context.Context, opts Options, out io.Writer) error {
	store, closeStore, err := OpenStore(opts)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	ids, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		printSystemMessage(out, "No counterexamples stored.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODEL\tCOMMANDS\tFAILURE")
	for _, id := range ids {
		ce, err := store.Load(ctx, id)
		if err != nil {
			return fmt.Errorf("load %s: %w", id, err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s at %d (%s)\n", ce.ID, ce.Model, len(ce.Steps), ce.Failure.Kind, ce.Failure.Index, ce.Failure.Command)
	}
	return tw.Flush()
}

// Forget deletes a stored counterexample.
func Forget(ctx context.Context, opts Options, id string) error {
	store, closeStore, err := OpenStore(opts)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()
	return store.Delete(ctx, id)
}

// Models prints the demo models.
func Models(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "MODEL\tDESCRIPTION")
	for _, m := range demo.Models() {
		fmt.Fprintf(tw, "%s\t%s\n", m.Name, m.Description)
	}
	return tw.Flush()
}
