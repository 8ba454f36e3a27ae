package asm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lf-lang/pretvm-go/internal/pretvm/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSchedule(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestLoadFileParsesSingleWorker(t *testing.T) {
	path := writeSchedule(t, `
workers:
  - name: main
    instructions:
      - op: ADDI
        args: ["r1", zero, "5"]
      - op: ADDI
        args: ["r2", zero, "7"]
      - op: ADD
        args: ["r3", "r1", "r2"]
      - op: STP
`)

	schedules, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, schedules, 1)

	s := schedules[0]
	require.Len(t, s, 4)
	assert.Equal(t, vm.ADDI, s[0].Op)
	assert.Equal(t, vm.RegRef(1), s[0].Op1.Reg)
	assert.Equal(t, vm.ZeroReg, s[0].Op2.Reg)
	assert.EqualValues(t, 5, s[0].Op3.Imm)
	assert.Equal(t, vm.STP, s[3].Op)
}

func TestLoadFileParsesMultipleWorkers(t *testing.T) {
	path := writeSchedule(t, `
workers:
  - name: producer
    instructions:
      - op: ADDI
        args: ["r1", "r1", "1"]
      - op: STP
  - name: consumer
    instructions:
      - op: WU
        args: ["r1", "1"]
      - op: STP
`)

	schedules, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, vm.WU, schedules[1][0].Op)
}

func TestLoadFileRejectsUnrecognizedMnemonic(t *testing.T) {
	path := writeSchedule(t, `
workers:
  - name: main
    instructions:
      - op: NOPE
        args: []
`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsOutOfRangeBranchTarget(t *testing.T) {
	path := writeSchedule(t, `
workers:
  - name: main
    instructions:
      - op: BEQ
        args: ["r1", "r2", "99"]
`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsTooManyOperands(t *testing.T) {
	path := writeSchedule(t, `
workers:
  - name: main
    instructions:
      - op: ADD
        args: ["r1", "r2", "r3", "r4"]
`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileRejectsInvalidRegisterReference(t *testing.T) {
	path := writeSchedule(t, `
workers:
  - name: main
    instructions:
      - op: ADD
        args: ["rX", "r1", "r2"]
`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFileReportsMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseOperandHandlesElidedForms(t *testing.T) {
	none1, err := parseOperand("")
	require.NoError(t, err)
	assert.Equal(t, vm.None(), none1)

	none2, err := parseOperand("_")
	require.NoError(t, err)
	assert.Equal(t, vm.None(), none2)

	zero, err := parseOperand("zero")
	require.NoError(t, err)
	assert.Equal(t, vm.ZeroReg, zero.Reg)
}
