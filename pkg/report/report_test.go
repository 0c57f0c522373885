package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/stateprop/pkg/domain"
	"github.com/aretw0/stateprop/pkg/report"
)

func sample() *domain.Counterexample {
	return &domain.Counterexample{
		ID:        "queue-000000000000002a",
		Model:     "queue",
		Seed:      7,
		Cycle:     3,
		CycleSeed: 42,
		Steps: []domain.StepRecord{
			{Origin: 2, Command: "push", Args: []string{"128"}},
			{Origin: 5, Command: "pop"},
		},
		Failure: domain.FailureRecord{
			Index:   1,
			Command: "pop",
			Kind:    domain.FailurePostcondition,
			Cause:   "postcondition violated: result -128",
		},
		OriginalLength: 12,
		ShrinkTrials:   40,
	}
}

func TestText(t *testing.T) {
	out := report.Text(sample())

	assert.Contains(t, out, "counterexample queue-000000000000002a (model queue, seed 7, cycle seed 42)")
	assert.Contains(t, out, "   0. push(128)\n")
	assert.Contains(t, out, "!  1. pop()\n")
	assert.Contains(t, out, "postcondition failure at command 1 (pop): postcondition violated: result -128")
	assert.Contains(t, out, "shrunk from 12 to 2 commands in 40 trials\n")
	assert.NotContains(t, out, "exhausted")
}

func TestMarkdown(t *testing.T) {
	ce := sample()
	ce.Exhausted = true
	out := report.Markdown(ce)

	assert.Contains(t, out, "# Counterexample `queue-000000000000002a`")
	assert.Contains(t, out, "| 0 | `push` | 128 | 2 |")
	assert.Contains(t, out, "| 1 | `pop` **✗** |  | 5 |")
	assert.Contains(t, out, "failed its **postcondition**")
	assert.Contains(t, out, "(budget exhausted)")
}
