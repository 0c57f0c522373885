// Package report renders counterexamples for humans.
package report

import (
	"fmt"
	"strings"

	"github.com/aretw0/stateprop/pkg/domain"
)

// Markdown renders ce as a Markdown document.
func Markdown(ce *domain.Counterexample) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Counterexample `%s`\n\n", ce.ID)
	fmt.Fprintf(&b, "- **Model:** %s\n", ce.Model)
	fmt.Fprintf(&b, "- **Seed:** %d (cycle %d, cycle seed %d)\n", ce.Seed, ce.Cycle, ce.CycleSeed)
	fmt.Fprintf(&b, "- **Shrunk:** %d → %d commands in %d trials", ce.OriginalLength, len(ce.Steps), ce.ShrinkTrials)
	if ce.Exhausted {
		b.WriteString(" (budget exhausted)")
	}
	b.WriteString("\n\n## Commands\n\n")

	b.WriteString("| # | Command | Arguments | Origin |\n")
	b.WriteString("|---|---------|-----------|--------|\n")
	for i, step := range ce.Steps {
		marker := ""
		if i == ce.Failure.Index {
			marker = " **✗**"
		}
		fmt.Fprintf(&b, "| %d | `%s`%s | %s | %d |\n", i, step.Command, marker, escape(strings.Join(step.Args, ", ")), step.Origin)
	}

	b.WriteString("\n## Failure\n\n")
	fmt.Fprintf(&b, "Command %d (`%s`) failed its **%s**", ce.Failure.Index, ce.Failure.Command, ce.Failure.Kind)
	if ce.Failure.Cause != "" {
		fmt.Fprintf(&b, ":\n\n```\n%s\n```\n", ce.Failure.Cause)
	} else {
		b.WriteString(".\n")
	}
	return b.String()
}

// Text renders ce as plain text, one command per line.
func Text(ce *domain.Counterexample) string {
	var b strings.Builder

	fmt.Fprintf(&b, "counterexample %s (model %s, seed %d, cycle seed %d)\n", ce.ID, ce.Model, ce.Seed, ce.CycleSeed)
	for i, step := range ce.Steps {
		marker := " "
		if i == ce.Failure.Index {
			marker = "!"
		}
		fmt.Fprintf(&b, "%s %2d. %s(%s)\n", marker, i, step.Command, strings.Join(step.Args, ", "))
	}
	fmt.Fprintf(&b, "%s failure at command %d (%s)", ce.Failure.Kind, ce.Failure.Index, ce.Failure.Command)
	if ce.Failure.Cause != "" {
		fmt.Fprintf(&b, ": %s", ce.Failure.Cause)
	}
	fmt.Fprintf(&b, "\nshrunk from %d to %d commands in %d trials", ce.OriginalLength, len(ce.Steps), ce.ShrinkTrials)
	if ce.Exhausted {
		b.WriteString(", budget exhausted")
	}
	b.WriteString("\n")
	return b.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
