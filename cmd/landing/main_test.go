package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioFile = "../../internal/scenario/testdata/landing.yaml"

// execute runs the root command with fresh flag state and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, cmd := range rootCmd.Commands() {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	configPath, logLevel = "", ""

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvaluateCmd(t *testing.T) {
	out, err := execute(t, "evaluate", "--config", "", "--runway-clear", "--speed", "120", "--wind", "20", "--visibility", "2000", "--traffic", "2")
	require.NoError(t, err)
	assert.Equal(t, "Landing Allowed: All conditions met for landing.\n", out)

	out, err = execute(t, "evaluate", "--config", "", "--speed", "200", "--emergency", "--priority", "--wind", "90", "--visibility", "100", "--explain")
	require.NoError(t, err)
	assert.Contains(t, out, "Landing Allowed: Emergency landing with priority clearance.")
	assert.Contains(t, out, "decided by P3")
}

func TestEvaluateCmd_WeatherFromConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("simulation:\n  weather:\n    wind_speed: 60\n    visibility: 500\n"), 0o644))

	out, err := execute(t, "evaluate", "--config", path, "--runway-clear", "--speed", "120")
	require.NoError(t, err)
	assert.Contains(t, out, "Landing Denied")

	out, err = execute(t, "evaluate", "--config", path, "--runway-clear", "--speed", "120", "--wind", "10", "--visibility", "3000")
	require.NoError(t, err)
	assert.Contains(t, out, "Landing Allowed")
}

func TestCheckCmd(t *testing.T) {
	out, err := execute(t, "check", "--config", "", scenarioFile)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS  all conditions safe")
	assert.Contains(t, out, "9 scenarios, 0 failed")
}

func TestCheckCmd_Failure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`scenarios:
  - name: wrongly expects denial
    request: {runway_clear: true, plane_speed: 120, wind_speed: 20, visibility: 2000, airport_traffic: 2}
    expect: {outcome: denied}
`), 0o644))

	out, err := execute(t, "check", "--config", "", path)
	require.Error(t, err)
	assert.Contains(t, out, "FAIL  wrongly expects denial")
}

func TestCoverageCmd(t *testing.T) {
	out, err := execute(t, "coverage", "--config", "", scenarioFile)
	require.NoError(t, err)
	assert.Contains(t, out, "safe_speed")
	assert.Contains(t, out, "coverage complete")

	dir := t.TempDir()
	path := filepath.Join(dir, "thin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`scenarios:
  - name: only one
    request: {runway_clear: true, plane_speed: 120, wind_speed: 20, visibility: 2000, airport_traffic: 2}
    expect: {outcome: allowed}
`), 0o644))

	out, err = execute(t, "coverage", "--config", "", path)
	require.Error(t, err)
	assert.Contains(t, out, "runway_clear never false")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "evaluate", "--config", "", "--log-level", "loud")
	assert.Error(t, err)
}
