package vm

// trace emits one structured debug event per dispatched instruction,
// reproducing the field set the original sources' LF_PRINT_DEBUG trace
// carries (worker, pc, opcode, operands) as zerolog key/value pairs instead
// of a printf line, so it can be filtered and aggregated by level/worker at
// the runtime's discretion.
func (w *Worker) trace(inst Instruction) {
	if !w.Logger.Debug().Enabled() {
		return
	}
	w.Logger.Debug().
		Int("pc", w.PC).
		Str("op", inst.Op.String()).
		Int("op1_reg", int(inst.Op1.Reg)).
		Int64("op1_imm", inst.Op1.Imm).
		Int("op2_reg", int(inst.Op2.Reg)).
		Int64("op2_imm", inst.Op2.Imm).
		Int("op3_reg", int(inst.Op3.Reg)).
		Int64("op3_imm", inst.Op3.Imm).
		Int("line", inst.Line).
		Msg("dispatch")
}
