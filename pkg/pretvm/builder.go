package pretvm

import (
	"github.com/lf-lang/pretvm-go/internal/pretvm/vm"
)

// ScheduleBuilder assembles one worker's Schedule instruction by
// instruction. It mirrors the compiler's emission order: callers append
// instructions in execution order and fix up any forward branch/jump
// targets once the final instruction index is known.
type ScheduleBuilder struct {
	nextReg      vm.RegRef
	instructions vm.Schedule
}

// NewScheduleBuilder returns an empty builder. Register 0 (Zero) is
// reserved; the first register Reg() allocates is 1.
func NewScheduleBuilder() *ScheduleBuilder {
	return &ScheduleBuilder{nextReg: 1}
}

// Reg allocates and returns a fresh general-purpose register.
func (b *ScheduleBuilder) Reg() Reg {
	r := b.nextReg
	b.nextReg++
	return r
}

// Len reports the number of instructions appended so far; useful for
// computing a branch target that refers to "the next instruction I add".
func (b *ScheduleBuilder) Len() int { return len(b.instructions) }

func (b *ScheduleBuilder) append(inst vm.Instruction) {
	b.instructions = append(b.instructions, inst)
}

// ADD appends `dst = src1 + src2`.
func (b *ScheduleBuilder) ADD(dst, src1, src2 Reg) {
	b.append(vm.Instruction{Op: vm.ADD, Op1: vm.Register(dst), Op2: vm.Register(src1), Op3: vm.Register(src2)})
}

// ADDI appends `dst = src + imm`.
func (b *ScheduleBuilder) ADDI(dst, src Reg, imm int64) {
	b.append(vm.Instruction{Op: vm.ADDI, Op1: vm.Register(dst), Op2: vm.Register(src), Op3: vm.Immediate(imm)})
}

func (b *ScheduleBuilder) branch(op vm.Opcode, op1, op2 Reg, target int) {
	b.append(vm.Instruction{Op: op, Op1: vm.Register(op1), Op2: vm.Register(op2), Op3: vm.Immediate(int64(target))})
}

// BEQ appends a branch to target (absolute instruction index) taken when
// *op1 == *op2.
func (b *ScheduleBuilder) BEQ(op1, op2 Reg, target int) { b.branch(vm.BEQ, op1, op2, target) }

// BNE appends a branch taken when *op1 != *op2.
func (b *ScheduleBuilder) BNE(op1, op2 Reg, target int) { b.branch(vm.BNE, op1, op2, target) }

// BLT appends a branch taken when *op1 < *op2 (signed).
func (b *ScheduleBuilder) BLT(op1, op2 Reg, target int) { b.branch(vm.BLT, op1, op2, target) }

// BGE appends a branch taken when *op1 >= *op2 (signed).
func (b *ScheduleBuilder) BGE(op1, op2 Reg, target int) { b.branch(vm.BGE, op1, op2, target) }

// DU appends a delay-until: block until *baseReg + offset (physical time).
func (b *ScheduleBuilder) DU(baseReg Reg, offset int64) {
	b.append(vm.Instruction{Op: vm.DU, Op1: vm.Register(baseReg), Op2: vm.Immediate(offset), Op3: vm.None()})
}

// EXE appends a reaction invocation: call the reaction at index fnIdx with
// *argReg as its opaque argument.
func (b *ScheduleBuilder) EXE(fnIdx Reg, argReg Reg) {
	b.append(vm.Instruction{Op: vm.EXE, Op1: vm.Register(fnIdx), Op2: vm.Register(argReg), Op3: vm.None()})
}

// WLT appends a spin-wait while *varReg >= bound.
func (b *ScheduleBuilder) WLT(varReg Reg, bound int64) {
	b.append(vm.Instruction{Op: vm.WLT, Op1: vm.Register(varReg), Op2: vm.Immediate(bound), Op3: vm.None()})
}

// WU appends a spin-wait while *varReg < bound.
func (b *ScheduleBuilder) WU(varReg Reg, bound int64) {
	b.append(vm.Instruction{Op: vm.WU, Op1: vm.Register(varReg), Op2: vm.Immediate(bound), Op3: vm.None()})
}

// JAL appends a jump-and-link to label+offset, saving the return address
// in dst (pass Zero to discard it).
func (b *ScheduleBuilder) JAL(dst Reg, label, offset int64) {
	b.append(vm.Instruction{Op: vm.JAL, Op1: vm.Register(dst), Op2: vm.Immediate(label), Op3: vm.Immediate(offset)})
}

// JALR appends a jump-and-link-register to *baseReg+offset, saving the
// return address in dst (pass Zero to discard it).
func (b *ScheduleBuilder) JALR(dst, baseReg Reg, offset int64) {
	b.append(vm.Instruction{Op: vm.JALR, Op1: vm.Register(dst), Op2: vm.Register(baseReg), Op3: vm.Immediate(offset)})
}

// STP appends the terminal stop instruction.
func (b *ScheduleBuilder) STP() {
	b.append(vm.Instruction{Op: vm.STP})
}

// Build returns the assembled Schedule. The builder remains usable
// afterward; subsequent appends extend the same underlying slice.
func (b *ScheduleBuilder) Build() Schedule {
	return b.instructions
}
