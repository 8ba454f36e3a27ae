// Package asm reads a static schedule's YAML text form, the on-disk
// counterpart of the compiler-emitted per-worker instruction arrays, into
// a vm.Schedule. It has no encoder: schedules are compiler output,
// consumed here, never produced by the VM side.
package asm

import (
	"fmt"
	"os"

	"github.com/lf-lang/pretvm-go/internal/pretvm/vm"
	"gopkg.in/yaml.v3"
)

// File is the top-level YAML document: one named schedule per worker.
type File struct {
	Workers []WorkerSchedule `yaml:"workers"`
}

// WorkerSchedule is one worker's instruction list.
type WorkerSchedule struct {
	Name         string            `yaml:"name"`
	Instructions []InstructionLine `yaml:"instructions"`
}

// InstructionLine is one textual instruction: a mnemonic plus up to three
// operands, each either a register reference ("r3", "zero") or a bare
// signed integer immediate.
type InstructionLine struct {
	Op   string   `yaml:"op"`
	Args []string `yaml:"args"`
}

var mnemonics = map[string]vm.Opcode{
	"ADD": vm.ADD, "ADDI": vm.ADDI,
	"BEQ": vm.BEQ, "BGE": vm.BGE, "BLT": vm.BLT, "BNE": vm.BNE,
	"DU": vm.DU, "EXE": vm.EXE,
	"WLT": vm.WLT, "WU": vm.WU,
	"JAL": vm.JAL, "JALR": vm.JALR,
	"STP": vm.STP,
}

// LoadFile reads and parses a schedule file, returning one vm.Schedule per
// worker in document order. Every schedule is statically validated before
// being returned.
func LoadFile(path string) ([]vm.Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schedule %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing schedule %s: %w", path, err)
	}

	schedules := make([]vm.Schedule, len(f.Workers))
	for i, worker := range f.Workers {
		schedule, err := parseWorker(worker)
		if err != nil {
			return nil, fmt.Errorf("worker %d (%s): %w", i, worker.Name, err)
		}
		if err := schedule.Valid(); err != nil {
			return nil, fmt.Errorf("worker %d (%s): %w", i, worker.Name, err)
		}
		schedules[i] = schedule
	}
	return schedules, nil
}

func parseWorker(w WorkerSchedule) (vm.Schedule, error) {
	schedule := make(vm.Schedule, len(w.Instructions))
	for i, line := range w.Instructions {
		op, ok := mnemonics[line.Op]
		if !ok {
			return nil, fmt.Errorf("line %d: unrecognized mnemonic %q", i, line.Op)
		}
		operands := [3]vm.Operand{vm.None(), vm.None(), vm.None()}
		for j, arg := range line.Args {
			if j >= 3 {
				return nil, fmt.Errorf("line %d: too many operands", i)
			}
			operand, err := parseOperand(arg)
			if err != nil {
				return nil, fmt.Errorf("line %d, operand %d: %w", i, j, err)
			}
			operands[j] = operand
		}
		schedule[i] = vm.Instruction{Op: op, Op1: operands[0], Op2: operands[1], Op3: operands[2], Line: i}
	}
	return schedule, nil
}

func parseOperand(s string) (vm.Operand, error) {
	if s == "" || s == "_" {
		return vm.None(), nil
	}
	if s == "zero" {
		return vm.Register(vm.ZeroReg), nil
	}
	if len(s) > 1 && s[0] == 'r' {
		var idx int
		if _, err := fmt.Sscanf(s[1:], "%d", &idx); err != nil {
			return vm.Operand{}, fmt.Errorf("invalid register reference %q", s)
		}
		return vm.Register(vm.RegRef(idx)), nil
	}
	var imm int64
	if _, err := fmt.Sscanf(s, "%d", &imm); err != nil {
		return vm.Operand{}, fmt.Errorf("invalid operand %q", s)
	}
	return vm.Immediate(imm), nil
}
