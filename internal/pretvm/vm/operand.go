package vm

// Operand is a tagged pair (register_ref | immediate). Which interpretation
// applies is static per opcode/operand-position: the VM never
// inspects a runtime tag to decide, it simply reads whichever field the
// executor for that opcode expects.
type Operand struct {
	Reg RegRef
	Imm int64
}

// Register builds an operand that refers to a register.
func Register(r RegRef) Operand { return Operand{Reg: r} }

// Immediate builds an operand that carries a signed immediate.
func Immediate(v int64) Operand { return Operand{Reg: NoRegister, Imm: v} }

// None builds an elided operand: a branch using it as a compare operand
// always falls through.
func None() Operand { return Operand{Reg: NoRegister} }
