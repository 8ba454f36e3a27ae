package vm

import (
	"context"

	"github.com/lf-lang/pretvm-go/internal/pretvm/tag"
)

// execADD implements ADD dst, src1, src2: *dst = *src1 + *src2, unsigned
// wraparound, PC += 1.
func (w *Worker) execADD(inst Instruction) {
	a := w.Regs.Get(inst.Op2.Reg)
	b := w.Regs.Get(inst.Op3.Reg)
	w.Regs.Set(inst.Op1.Reg, a+b)
	w.PC++
}

// execADDI implements ADDI dst, src, imm: *dst = *src + imm, PC += 1. Writes
// to the zero register (e.g. ADDI zero, zero, k) are silently absorbed by
// RegisterFile.Set.
func (w *Worker) execADDI(inst Instruction) {
	a := w.Regs.Get(inst.Op2.Reg)
	w.Regs.Set(inst.Op1.Reg, a+uint64(inst.Op3.Imm))
	w.PC++
}

// branchPredicate reports whether a two-operand comparison is satisfied. A
// branch whose first or second register reference is NoRegister (the
// compiler elides unused operands) is always false.
func branchPredicate(op Opcode, a, b Operand, regs *RegisterFile) bool {
	if a.Reg == NoRegister || b.Reg == NoRegister {
		return false
	}
	x, y := regs.Get(a.Reg), regs.Get(b.Reg)
	switch op {
	case BEQ:
		return x == y
	case BNE:
		return x != y
	case BLT:
		return int64(x) < int64(y)
	case BGE:
		return int64(x) >= int64(y)
	default:
		return false
	}
}

// execBranch implements BEQ/BNE/BLT/BGE op1, op2, target: taken sets
// PC = op3.Imm, not-taken advances PC by 1.
func (w *Worker) execBranch(inst Instruction) {
	if branchPredicate(inst.Op, inst.Op1, inst.Op2, w.Regs) {
		w.PC = int(inst.Op3.Imm)
	} else {
		w.PC++
	}
}

// execDU implements DU base_reg, offset_imm, _: blocks the worker until
// *base_reg + offset_imm (physical time), spinning below the configured
// threshold and deferring to the platform's interruptible sleep-until
// above it, per the spin-wait-threshold design note.
func (w *Worker) execDU(ctx context.Context, inst Instruction) error {
	wakeup := w.Regs.Get(inst.Op1.Reg) + uint64(inst.Op2.Imm)
	deadline := w.toInstant(wakeup)

	for {
		now := w.Platform.Now()
		interval := deadline - now
		if interval <= 0 {
			break
		}
		if tag.Interval(interval) < w.SpinWaitThreshold {
			if err := ctx.Err(); err != nil {
				return err
			}
			continue
		}
		if err := w.Platform.SleepUntil(ctx, deadline); err != nil {
			return err
		}
	}
	w.PC++
	return nil
}

// execEXE implements EXE fn_reg, arg_reg, _: resolves fn_reg through the
// worker's reaction registry and calls it synchronously with arg_reg's
// value reinterpreted as an opaque argument.
func (w *Worker) execEXE(inst Instruction) error {
	idx := int(w.Regs.Get(inst.Op1.Reg))
	reaction := w.Reactions.Lookup(idx)
	if reaction == nil {
		return &Fault{Worker: w.ID, PC: w.PC, Op: inst.Op, Reason: "no reaction registered at index"}
	}
	reaction(w.Regs.Get(inst.Op2.Reg))
	w.PC++
	return nil
}

// execWLT implements WLT var_reg, bound_imm, _: spins while *var_reg is not
// strictly below bound_imm. The spin checks ctx between reads so a run-wide
// cancellation or timeout can still break a worker stuck on a bound that
// never arrives.
func (w *Worker) execWLT(ctx context.Context, inst Instruction) error {
	bound := uint64(inst.Op2.Imm)
	for w.Regs.Get(inst.Op1.Reg) >= bound {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	w.PC++
	return nil
}

// execWU implements WU var_reg, bound_imm, _: spins while *var_reg has not
// yet reached bound_imm. This is the VM's cross-worker rendezvous
// primitive; the writer side advances var_reg via ADD/ADDI or
// RegisterFile.Increment. Like execWLT, it checks ctx between reads.
func (w *Worker) execWU(ctx context.Context, inst Instruction) error {
	bound := uint64(inst.Op2.Imm)
	for w.Regs.Get(inst.Op1.Reg) < bound {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	w.PC++
	return nil
}

// execJAL implements JAL dst, label_imm, offset_imm: saves the return
// address in dst (unless dst is zero) and jumps to label_imm+offset_imm.
func (w *Worker) execJAL(inst Instruction) {
	if inst.Op1.Reg != ZeroReg {
		w.Regs.Set(inst.Op1.Reg, uint64(w.PC+1))
	}
	w.PC = int(inst.Op2.Imm + inst.Op3.Imm)
}

// execJALR implements JALR dst, base_reg, offset_imm: saves the return
// address in dst (unless dst is zero) and jumps to *base_reg+offset_imm.
func (w *Worker) execJALR(inst Instruction) {
	if inst.Op1.Reg != ZeroReg {
		w.Regs.Set(inst.Op1.Reg, uint64(w.PC+1))
	}
	w.PC = int(w.Regs.Get(inst.Op2.Reg)) + int(inst.Op3.Imm)
}

// execSTP implements STP: signals the dispatch loop to exit after this
// instruction. PC is left unmodified.
func (w *Worker) execSTP() {
	w.exitLoop = true
}
