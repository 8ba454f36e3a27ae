package vm

import "sync/atomic"

// Reg is the VM's 64-bit register word (reg_t in the original sources).
type Reg = uint64

// RegRef is a static index into a RegisterFile. Register index 0 is always
// the read-only zero register.
type RegRef int

// ZeroReg is the distinguished read-only register that always holds 0.
const ZeroReg RegRef = 0

// NoRegister is the "elided operand" sentinel: branch opcodes treat a
// comparison against NoRegister as false and fall through, matching
// "if either register reference is null... the predicate is
// treated as false."
const NoRegister RegRef = -1

// RegisterFile is the shared, ordered sequence of named registers
// accessible from any worker. Every register is backed by an atomic word:
// the single-writer-per-register discipline for general-purpose
// registers means this never contends, but the counter/semaphore registers
// genuinely are read and written across worker goroutines, and Go's memory
// model requires atomics (not just "the value happens to be monotone") to
// make that race-free. Using atomics uniformly avoids a second, special-
// cased storage type for counters.
type RegisterFile struct {
	regs []atomic.Uint64
}

// NewRegisterFile allocates a register file with n general-purpose/role
// registers in addition to the fixed zero register at index 0.
func NewRegisterFile(n int) *RegisterFile {
	return &RegisterFile{regs: make([]atomic.Uint64, n+1)}
}

// Len reports the number of addressable registers, including the zero
// register.
func (f *RegisterFile) Len() int { return len(f.regs) }

// Get reads a register's value. Reading the zero register always yields 0.
func (f *RegisterFile) Get(r RegRef) Reg {
	if r == ZeroReg || r == NoRegister {
		return 0
	}
	return f.regs[r].Load()
}

// Set writes a register's value. Writes to the zero register are silent
// no-ops, matching the original's "*dest != &zero" guard in JAL/JALR and
// the tolerated no-op write via ADDI.
func (f *RegisterFile) Set(r RegRef, v Reg) {
	if r == ZeroReg || r == NoRegister {
		return
	}
	f.regs[r].Store(v)
}

// Increment atomically adds delta to register r and returns the new value.
// It lets Go code (for example, a reaction) advance a counter register for
// WU/WLT rendezvous without a read-modify-write race. No opcode calls it:
// ADD and ADDI read and write their destination with separate Get and Set.
func (f *RegisterFile) Increment(r RegRef, delta Reg) Reg {
	if r == ZeroReg || r == NoRegister {
		return 0
	}
	return f.regs[r].Add(delta)
}

// RegisterRoles names the sub-ranges of a RegisterFile the compiler
// allocates for specific purposes: return addresses, binary
// semaphores, and rendezvous counters. The VM itself does not care about
// these ranges — every opcode addresses registers generically — and the
// schedule builder and config loader do not build or read this type
// either.
type RegisterRoles struct {
	TimeOffset RegRef
	OffsetInc  RegRef
	ReturnAddr []RegRef
	BinarySema []RegRef
	Counters   []RegRef
}
