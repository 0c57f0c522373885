package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/stateprop"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "stateprop version "+strings.TrimSpace(stateprop.Version)+"\n", out)
}

func TestModelsCommand(t *testing.T) {
	out, err := execute(t, "models")
	require.NoError(t, err)
	assert.Contains(t, out, "counter")
	assert.Contains(t, out, "queue")
}

func TestRunCommand_FailureExitCode(t *testing.T) {
	out, err := execute(t, "run", "counter", "--store", "memory", "--seed", "11", "--cycles", "50", "--quiet", "--log-level", "error")
	var exit exitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.code)
	assert.Contains(t, out, "FAIL")
}

func TestReplayCommand_RequiresID(t *testing.T) {
	_, err := execute(t, "replay")
	assert.Error(t, err)
}
