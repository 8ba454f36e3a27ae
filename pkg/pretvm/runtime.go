package pretvm

import (
	"context"
	"errors"
	"fmt"

	"github.com/lf-lang/pretvm-go/internal/pretvm/platform"
	"github.com/lf-lang/pretvm-go/internal/pretvm/sched"
	"github.com/lf-lang/pretvm-go/internal/pretvm/vm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Platform is the contract a Runtime depends on for timekeeping and
// synchronization. Use platform.NewRuntime() for production and
// platform.NewDeterministic() for tests that need a virtual clock.
type Platform = platform.Platform

// Runtime executes a set of worker schedules to completion. It is
// single-use: construct one per run.
type Runtime struct {
	inner *sched.Runtime
}

// RuntimeOption configures NewRuntime.
type RuntimeOption func(*runtimeOptions)

type runtimeOptions struct {
	platform  Platform
	reactions *vm.ReactionRegistry
	logger    zerolog.Logger
}

// WithPlatform overrides the Platform implementation; default is
// platform.NewRuntime() (wall-clock).
func WithPlatform(p Platform) RuntimeOption {
	return func(o *runtimeOptions) { o.platform = p }
}

// WithReactions registers the Reactions an EXE instruction may invoke, in
// index order.
func WithReactions(reactions ...Reaction) RuntimeOption {
	return func(o *runtimeOptions) { o.reactions = vm.NewReactionRegistry(reactions...) }
}

// WithLogger overrides the zerolog.Logger used for structured dispatch
// tracing and run lifecycle events; default is the global zerolog logger.
func WithLogger(logger zerolog.Logger) RuntimeOption {
	return func(o *runtimeOptions) { o.logger = logger }
}

// NewRuntime constructs a Runtime ready to execute one Schedule per
// worker. cfg.NumWorkers is ignored in favor of len(schedules) — the
// caller determines worker count by how many schedules it supplies.
func NewRuntime(cfg *Config, schedules []Schedule, opts ...RuntimeOption) (*Runtime, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	o := &runtimeOptions{logger: log.Logger}
	for _, opt := range opts {
		opt(o)
	}

	for i, s := range schedules {
		if err := s.Valid(); err != nil {
			return nil, &Error{Code: ErrInvalidSchedule, Message: fmt.Sprintf("schedule %d", i), Cause: err}
		}
	}

	cfgCopy := cfg.Clone()
	cfgCopy.NumWorkers = len(schedules)

	inner, err := sched.New(cfgCopy, o.platform, o.reactions, schedules, o.logger)
	if err != nil {
		return nil, &Error{Code: ErrInvalidConfig, Message: "constructing runtime", Cause: err}
	}
	return &Runtime{inner: inner}, nil
}

// Registers exposes the shared register file so callers can seed initial
// values (e.g. DU deadlines, semaphore bounds) before Run.
func (r *Runtime) Registers() *vm.RegisterFile { return r.inner.Registers() }

// SetRegister is a convenience wrapper around Registers().Set.
func (r *Runtime) SetRegister(reg Reg, value uint64) {
	r.inner.Registers().Set(reg, value)
}

// GetRegister is a convenience wrapper around Registers().Get.
func (r *Runtime) GetRegister(reg Reg) uint64 {
	return r.inner.Registers().Get(reg)
}

// Run spawns one goroutine per schedule and blocks until all have
// terminated (via STP), the context is canceled, or the configured
// timeout elapses.
func (r *Runtime) Run(ctx context.Context) error {
	if err := r.inner.Run(ctx); err != nil {
		code := ErrExecution
		if errors.Is(err, context.DeadlineExceeded) {
			code = ErrTimeout
		}
		return &Error{Code: code, Message: fmt.Sprintf("run failed: %v", err), Cause: err}
	}
	return nil
}
