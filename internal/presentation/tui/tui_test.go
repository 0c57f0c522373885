package tui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stateprop/internal/presentation/tui"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3\n")
	assert.Contains(t, buf.String(), "v1.2.3")
}

func TestVerdict(t *testing.T) {
	var buf bytes.Buffer
	tui.Verdict(&buf, "queue", true, 100)
	assert.Contains(t, buf.String(), "PASS")
	assert.Contains(t, buf.String(), "queue: 100 cycles passed")

	buf.Reset()
	tui.Verdict(&buf, "counter", false, 3)
	assert.Contains(t, buf.String(), "FAIL")
	assert.Contains(t, buf.String(), "failed in cycle 3")
}

func TestNewRenderer(t *testing.T) {
	render, err := tui.NewRenderer(80)
	require.NoError(t, err)

	out, err := render("# Counterexample\n\n| # | command |\n|---|---|\n| 0 | inc() |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Counterexample")
	assert.Contains(t, out, "inc()")
}
