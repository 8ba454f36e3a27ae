// Package config loads and validates the shared configuration constants a
// schedule compiler emits alongside the per-worker instruction arrays
// the execution timeout, counter-array size, and the named
// register ranges. Validate checks the ranges against the register file
// size; nothing else in the runtime reads them.
package config

import (
	"fmt"
	"os"

	"github.com/lf-lang/pretvm-go/internal/pretvm/tag"
	"gopkg.in/yaml.v3"
)

// RegisterRange names a contiguous run of registers reserved for one role.
type RegisterRange struct {
	Start int `yaml:"start"`
	Count int `yaml:"count"`
}

// RuntimeConfig is the compiler-emitted, human-editable description of a
// VM run: how many registers and workers it needs, the named ranges within
// the register file, and the overall execution deadline.
type RuntimeConfig struct {
	// NumWorkers is the worker count the schedule was compiled for; Validate
	// rejects a negative value. The runtime does not consult it: it runs one
	// worker per schedule (pretvm.NewRuntime overwrites it with that count).
	NumWorkers int `yaml:"num_workers"`

	// NumRegisters is the size of the shared register file, excluding the
	// fixed zero register at index 0.
	NumRegisters int `yaml:"num_registers"`

	// Timeout bounds total wall-clock execution time; zero means no
	// timeout. It is consumed by the runtime orchestrator, not by any
	// individual worker's dispatch loop.
	Timeout tag.Interval `yaml:"timeout_ns"`

	// TimeOffset and OffsetInc name the registers used as a global epoch
	// adjustment.
	TimeOffset int `yaml:"time_offset_reg"`
	OffsetInc  int `yaml:"offset_inc_reg"`

	ReturnAddr RegisterRange `yaml:"return_addr"`
	BinarySema RegisterRange `yaml:"binary_sema"`
	Counters   RegisterRange `yaml:"counters"`

	// SpinWaitThreshold overrides DU's busy-wait/sleep-until cutoff. Zero
	// means use vm.DefaultSpinWaitThreshold.
	SpinWaitThreshold tag.Interval `yaml:"spin_wait_threshold_ns"`
}

// Default returns a single-worker configuration with no named register
// ranges, sufficient for schedules that use only general-purpose
// registers.
func Default() *RuntimeConfig {
	return &RuntimeConfig{
		NumWorkers:   1,
		NumRegisters: 16,
	}
}

// Load reads and parses a RuntimeConfig from a YAML file, then validates
// it.
func Load(path string) (*RuntimeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations that cannot possibly describe a runnable
// schedule.
func (c *RuntimeConfig) Validate() error {
	if c.NumWorkers < 0 {
		return fmt.Errorf("num_workers must be >= 0, got %d", c.NumWorkers)
	}
	if c.NumRegisters <= 0 {
		return fmt.Errorf("num_registers must be positive, got %d", c.NumRegisters)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout_ns must be >= 0, got %d", c.Timeout)
	}
	for name, r := range map[string]RegisterRange{
		"return_addr": c.ReturnAddr,
		"binary_sema": c.BinarySema,
		"counters":    c.Counters,
	} {
		if r.Count == 0 {
			continue
		}
		if r.Start < 1 {
			return fmt.Errorf("%s range must start at or after register 1 (0 is the zero register), got %d", name, r.Start)
		}
		if r.Start+r.Count-1 >= c.NumRegisters+1 {
			return fmt.Errorf("%s range [%d,%d) exceeds num_registers=%d", name, r.Start, r.Start+r.Count, c.NumRegisters)
		}
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *RuntimeConfig) Clone() *RuntimeConfig {
	clone := *c
	return &clone
}
