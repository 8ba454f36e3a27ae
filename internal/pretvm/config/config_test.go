package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsNonPositiveRegisters(t *testing.T) {
	cfg := Default()
	cfg.NumRegisters = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativeWorkers(t *testing.T) {
	cfg := Default()
	cfg.NumWorkers = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativeTimeout(t *testing.T) {
	cfg := Default()
	cfg.Timeout = -1
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsRangeStartingAtZero(t *testing.T) {
	cfg := Default()
	cfg.Counters = RegisterRange{Start: 0, Count: 2}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsOutOfBoundsRange(t *testing.T) {
	cfg := Default()
	cfg.NumRegisters = 4
	cfg.Counters = RegisterRange{Start: 3, Count: 4}
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsRangeAtUpperBound(t *testing.T) {
	cfg := Default()
	cfg.NumRegisters = 4
	cfg.Counters = RegisterRange{Start: 3, Count: 2}
	assert.NoError(t, cfg.Validate())
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.NumWorkers = 99
	assert.NotEqual(t, cfg.NumWorkers, clone.NumWorkers)
}

func TestLoadParsesYAMLAndValidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
num_workers: 2
num_registers: 8
timeout_ns: 1000000
counters:
  start: 1
  count: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.NumWorkers)
	assert.Equal(t, 8, cfg.NumRegisters)
	assert.EqualValues(t, 1000000, cfg.Timeout)
	assert.Equal(t, RegisterRange{Start: 1, Count: 2}, cfg.Counters)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_registers: 0\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadReportsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
