package vm

import (
	"context"
	"fmt"

	"github.com/lf-lang/pretvm-go/internal/pretvm/platform"
	"github.com/lf-lang/pretvm-go/internal/pretvm/tag"
	"github.com/rs/zerolog"
)

// DefaultSpinWaitThreshold is the interval below which DU busy-waits
// instead of calling through to the platform's sleep-until, chosen for
// predictable short-interval latency.
const DefaultSpinWaitThreshold tag.Interval = tag.Second

// Fault is a fatal, worker-local VM error: an unrecognized opcode, an
// out-of-range jump discovered at runtime, or an EXE with no registered
// reaction. The dispatch loop aborts the worker on a Fault; it is never
// retried.
type Fault struct {
	Worker int
	PC     int
	Op     Opcode
	Reason string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("worker %d: pc %d (%s): %s", f.Worker, f.PC, f.Op, f.Reason)
}

// Worker runs one per-worker dispatch loop against a
// schedule, a shared register file, and a shared reaction registry. Workers
// share no mutable state among themselves except through Regs and Reactions.
type Worker struct {
	ID        int
	Schedule  Schedule
	Regs      *RegisterFile
	Reactions *ReactionRegistry
	Platform  platform.Platform
	Logger    zerolog.Logger

	// SpinWaitThreshold is DU's busy-wait/sleep-until cutoff; zero defaults
	// to DefaultSpinWaitThreshold at Run time.
	SpinWaitThreshold tag.Interval

	// TimeOffset, if non-nil, is added to DU's base register read before
	// comparison, mirroring the compiler-emitted time_offset/offset_inc
	// registers. Nil means no offset is applied.
	TimeOffset *RegRef

	PC       int
	exitLoop bool
}

// NewWorker constructs a Worker ready to Run a schedule against shared VM
// state.
func NewWorker(id int, schedule Schedule, regs *RegisterFile, reactions *ReactionRegistry, p platform.Platform, logger zerolog.Logger) *Worker {
	return &Worker{
		ID:                id,
		Schedule:          schedule,
		Regs:              regs,
		Reactions:         reactions,
		Platform:          p,
		Logger:            logger.With().Int("worker", id).Logger(),
		SpinWaitThreshold: DefaultSpinWaitThreshold,
	}
}

func (w *Worker) toInstant(v uint64) tag.Instant {
	instant := tag.Instant(v)
	if w.TimeOffset != nil {
		instant = tag.Add(instant, tag.Interval(w.Regs.Get(*w.TimeOffset)))
	}
	return instant
}

// Run drives the fetch-decode-execute loop to completion: it returns nil
// once STP sets exitLoop, and a *Fault (or context error) on any abort
// condition. It initializes PC to 0 on every call, matching the per-worker
// lifecycle.
func (w *Worker) Run(ctx context.Context) error {
	w.PC = 0
	w.exitLoop = false
	if w.SpinWaitThreshold == 0 {
		w.SpinWaitThreshold = DefaultSpinWaitThreshold
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		done, err := w.Step(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Step fetches and executes exactly one instruction, returning true once
// STP has set exitLoop (the caller must not Step again after that).
func (w *Worker) Step(ctx context.Context) (bool, error) {
	if w.PC < 0 || w.PC >= len(w.Schedule) {
		return false, &Fault{Worker: w.ID, PC: w.PC, Reason: "program counter out of range"}
	}
	inst := w.Schedule[w.PC]
	w.trace(inst)

	switch inst.Op {
	case ADD:
		w.execADD(inst)
	case ADDI:
		w.execADDI(inst)
	case BEQ, BNE, BLT, BGE:
		w.execBranch(inst)
	case DU:
		if err := w.execDU(ctx, inst); err != nil {
			return false, err
		}
	case EXE:
		if err := w.execEXE(inst); err != nil {
			return false, err
		}
	case WLT:
		if err := w.execWLT(ctx, inst); err != nil {
			return false, err
		}
	case WU:
		if err := w.execWU(ctx, inst); err != nil {
			return false, err
		}
	case JAL:
		w.execJAL(inst)
	case JALR:
		w.execJALR(inst)
	case STP:
		w.execSTP()
	default:
		return false, &Fault{Worker: w.ID, PC: w.PC, Op: inst.Op, Reason: "unrecognized opcode"}
	}

	return w.exitLoop, nil
}
