package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommands(t *testing.T) {
	for _, command := range []string{CommandRun, CommandValidate, CommandStatusReport} {
		t.Run(command, func(t *testing.T) {
			var out bytes.Buffer
			cfg, got, exit, err := Parse([]string{command, "docs/"}, &out)
			require.NoError(t, err)
			assert.False(t, exit)
			assert.Equal(t, command, got)
			assert.Equal(t, "docs/", cfg.DocsPath)
		})
	}
}

func TestParseUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	_, _, _, err := Parse([]string{"frobnicate"}, &out)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseDocsFlagVariants(t *testing.T) {
	var out bytes.Buffer

	cfg, _, _, err := Parse([]string{"run", "--docs", "a"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.DocsPath)

	cfg, _, _, err = Parse([]string{"run", "-d", "b"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "b", cfg.DocsPath)
}

func TestParseNoArgsPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	_, _, exit, err := Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exit)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParseNoPathPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	_, _, exit, err := Parse([]string{"run"}, &out)
	require.NoError(t, err)
	assert.True(t, exit)
}

func TestParseValidationErrors(t *testing.T) {
	cases := map[string][]string{
		"bad log format":           {"run", "--log-format", "xml", "docs/"},
		"bad log level":            {"run", "--log-level", "verbose", "docs/"},
		"snapshot needs an output": {"snapshot", "docs/"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			_, _, _, err := Parse(args, &out)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}

func TestParseDefaults(t *testing.T) {
	var out bytes.Buffer
	cfg, _, _, err := Parse([]string{"run", "docs/"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 1, cfg.WorkerCount)
	assert.Empty(t, cfg.SnapshotPath)
}

func TestParseSnapshotCommand(t *testing.T) {
	var out bytes.Buffer
	cfg, command, _, err := Parse([]string{"snapshot", "--snapshot-out", "reg.json", "docs/"}, &out)
	require.NoError(t, err)
	assert.Equal(t, CommandSnapshot, command)
	assert.Equal(t, "reg.json", cfg.SnapshotPath)
}
