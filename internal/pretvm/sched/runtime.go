// Package sched wires together the pieces of the
// "concurrency & resource model": N worker goroutines, one dispatch loop
// each, running against a shared register file and reaction registry,
// joined under a single run-wide timeout.
package sched

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/lf-lang/pretvm-go/internal/pretvm/config"
	"github.com/lf-lang/pretvm-go/internal/pretvm/platform"
	"github.com/lf-lang/pretvm-go/internal/pretvm/tag"
	"github.com/lf-lang/pretvm-go/internal/pretvm/vm"
	"github.com/rs/zerolog"
)

// Runtime owns the shared VM state for one execution: the register file,
// reaction registry, and per-worker schedules. It is single-use — call Run
// once per Runtime.
type Runtime struct {
	cfg       *config.RuntimeConfig
	platform  platform.Platform
	regs      *vm.RegisterFile
	reactions *vm.ReactionRegistry
	schedules []vm.Schedule
	logger    zerolog.Logger
}

// New builds a Runtime that runs one worker per entry of schedules.
// cfg.NumWorkers is validated but not otherwise consulted: it is not
// compared with len(schedules), and the platform's core count does not
// change the number of workers.
func New(cfg *config.RuntimeConfig, p platform.Platform, reactions *vm.ReactionRegistry, schedules []vm.Schedule, logger zerolog.Logger) (*Runtime, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid runtime config: %w", err)
	}
	for i, s := range schedules {
		if err := s.Valid(); err != nil {
			return nil, fmt.Errorf("schedule %d: %w", i, err)
		}
	}
	if p == nil {
		p = platform.NewRuntime()
	}
	if reactions == nil {
		reactions = vm.NewReactionRegistry()
	}
	return &Runtime{
		cfg:       cfg,
		platform:  p,
		regs:      vm.NewRegisterFile(cfg.NumRegisters),
		reactions: reactions,
		schedules: schedules,
		logger:    logger,
	}, nil
}

// Registers exposes the shared register file so a caller can seed initial
// values (e.g. DU deadlines) before Run.
func (r *Runtime) Registers() *vm.RegisterFile { return r.regs }

// Run spawns one goroutine per schedule, each driving its own Worker, and
// blocks until every worker has returned STP-terminated or the run's
// timeout (if configured) elapses. It returns the first non-nil worker
// error encountered, if any, wrapped with the failing worker's index.
func (r *Runtime) Run(ctx context.Context) error {
	runID := uuid.New().String()
	log := r.logger.With().Str("run_id", runID).Logger()
	log.Info().Int("workers", len(r.schedules)).Msg("run starting")

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, tag.AsDuration(r.cfg.Timeout))
		defer cancel()
	}

	errs := make([]error, len(r.schedules))
	var wg sync.WaitGroup
	for i, schedule := range r.schedules {
		wg.Add(1)
		go func(i int, schedule vm.Schedule) {
			defer wg.Done()
			w := vm.NewWorker(i, schedule, r.regs, r.reactions, r.platform, log)
			if r.cfg.SpinWaitThreshold > 0 {
				w.SpinWaitThreshold = r.cfg.SpinWaitThreshold
			}
			if err := w.Run(ctx); err != nil {
				errs[i] = fmt.Errorf("worker %d: %w", i, err)
			}
		}(i, schedule)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			log.Error().Err(err).Msg("run failed")
			return err
		}
	}
	log.Info().Msg("run completed")
	return nil
}
