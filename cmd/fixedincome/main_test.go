package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpgo/fixedincome/internal/domain"
	"github.com/rpgo/fixedincome/internal/output"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// writeExample stores the example input file in a temp dir and returns its path.
func writeExample(t *testing.T) string {
	t.Helper()
	out, err := execute(t, "example")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "switch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(out), 0o644))
	return path
}

func TestExampleCommand(t *testing.T) {
	out, err := execute(t, "example")
	require.NoError(t, err)
	assert.Contains(t, out, "assumptions:")
	assert.Contains(t, out, "current:")
	assert.Contains(t, out, "proposed:")
}

func TestAnalyzeCommand_JSON(t *testing.T) {
	path := writeExample(t)
	out, err := execute(t, "analyze", "--config", path, "--format", "json", "--simulations", "250", "--seed", "5", "--log-level", "error")
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	mc := decoded["monte_carlo"].(map[string]interface{})
	assert.EqualValues(t, 250, mc["num_simulations"])
	assert.EqualValues(t, 5, mc["seed"])
	rec := decoded["recommendation"].(map[string]interface{})
	assert.Contains(t, []interface{}{"MIGRATE", "CONSIDER", "KEEP"}, rec["action"])
}

func TestProjectCommand_PositionalPath(t *testing.T) {
	path := writeExample(t)
	out, err := execute(t, "project", path, "-f", "projection-csv", "--log-level", "error")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 12)
}

func TestSimulateCommand_EnvironmentOverride(t *testing.T) {
	path := writeExample(t)
	t.Setenv("FIXEDINCOME_SIMULATIONS", "120")
	t.Setenv("FIXEDINCOME_LOG_LEVEL", "error")

	out, err := execute(t, "simulate", "--config", path, "--format", "montecarlo-csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulations,120,Number of draws")
}

func TestBreakevenAndScenarioCommands(t *testing.T) {
	path := writeExample(t)

	out, err := execute(t, "breakeven", path, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "BREAKEVEN: proposed rate")
	assert.NotContains(t, out, "MONTE CARLO")

	out, err = execute(t, "scenarios", path, "--format", "csv", "--log-level", "error")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, len(domain.DefaultScenarioCatalog())+1)
}

func TestCommandErrors(t *testing.T) {
	path := writeExample(t)

	_, err := execute(t, "analyze", "--log-level", "error")
	assert.ErrorIs(t, err, errNoConfig)

	_, err = execute(t, "project", path, "--format", "pdf", "--log-level", "error")
	assert.ErrorIs(t, err, output.ErrUnsupportedFormat)

	_, err = execute(t, "project", path, "--log-level", "verbose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")

	_, err = execute(t, "simulate", path, "--simulations=-5", "--log-level", "error")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = execute(t, "project", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInitializeLogger(t *testing.T) {
	logger, err := initializeLogger(domain.LoggingConfig{Level: "debug", Format: "console"}, "", "")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	logger, err = initializeLogger(domain.LoggingConfig{}, "warning", "json")
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(-1))

	_, err = initializeLogger(domain.LoggingConfig{Format: "xml"}, "", "")
	assert.Error(t, err)
}

func TestBindFlags(t *testing.T) {
	c := &cli{v: viper.New()}
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("simulations", 0, "")
	flags.String("log-level", "", "")

	require.NoError(t, c.bindFlags(flags))
	t.Setenv("FIXEDINCOME_LOG_LEVEL", "warn")
	assert.Equal(t, "warn", c.v.GetString("log-level"))

	require.NoError(t, flags.Parse([]string{"--simulations", "75"}))
	assert.Equal(t, 75, c.v.GetInt("simulations"))
	assert.True(t, c.v.IsSet("simulations"))

	assert.NotPanics(t, func() { newRootCmd() })
}
