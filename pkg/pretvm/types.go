package pretvm

import (
	"github.com/lf-lang/pretvm-go/internal/pretvm/config"
	"github.com/lf-lang/pretvm-go/internal/pretvm/tag"
	"github.com/lf-lang/pretvm-go/internal/pretvm/vm"
)

// Reg is an index into a Runtime's shared register file.
type Reg = vm.RegRef

// Zero is the distinguished read-only register that always holds 0.
const Zero = vm.ZeroReg

// Instant and Interval are re-exported for callers seeding register values
// with deadlines or computing schedule-relative time arithmetic.
type Instant = tag.Instant
type Interval = tag.Interval

// Time unit constants, re-exported from the tag package.
const (
	Nanosecond  = tag.Nanosecond
	Microsecond = tag.Microsecond
	Millisecond = tag.Millisecond
	Second      = tag.Second
	Minute      = tag.Minute
	Hour        = tag.Hour
	Day         = tag.Day
	Week        = tag.Week
)

// Tag is a (time, microstep) pair totally ordered lexicographically.
type Tag = tag.Tag

// Reaction is the ABI an EXE instruction invokes.
type Reaction = vm.Reaction

// Schedule is one worker's finite ordered instruction sequence.
type Schedule = vm.Schedule

// Config is the compiler-emitted, YAML-loadable description of a run:
// worker count, register file size, named register ranges, and timeout.
type Config = config.RuntimeConfig

// DefaultConfig returns a single-worker configuration with no named
// register ranges.
func DefaultConfig() *Config { return config.Default() }

// LoadConfig reads and validates a Config from a YAML file.
func LoadConfig(path string) (*Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, &Error{Code: ErrInvalidConfig, Message: "loading config", Cause: err}
	}
	return cfg, nil
}
