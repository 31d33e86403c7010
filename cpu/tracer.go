package cpu

// TraceFunc is the shape of a retired-instruction observer: a callback
// given the machine state plus a printf-style template and typed args rich
// enough to drive both a human trace dump and a structured test assertion.
type TraceFunc interface {
	~func(state *Machine, format string, args ...any)
}

// NopTrace is the zero-overhead observer: a trivial function whose calls
// the compiler can fold away as dead code, rather than a runtime branch on
// "is tracing enabled" checked on every instruction. Step is generic over
// TraceFunc so NopTrace costs nothing at call sites that pass it directly.
func NopTrace(*Machine, string, ...any) {}

// traceStep is called by Step once per retired instruction, after the
// opcode has been fetched but before the instruction's side effects are
// observable, so a tracer always sees pre-instruction register state
// alongside the decoded mnemonic. Immediate operands are not yet consumed at
// that point: the two bytes after the opcode are read for display only, and
// PC still points just past the opcode.
func traceStep[T TraceFunc](m *Machine, trace T, pc uint16, opcode byte, name string, operands []byte) {
	trace(m, "%05d %06d  %04X  %02X%02X %-9s  A=%02X B=%02X C=%02X D=%02X E=%02X HL=%04X SP=%04X  S=%v Z=%v P=%v Y=%v",
		m.ICount, m.Cycle, pc, opcode, operands, name, m.A, m.B, m.C, m.D, m.E, m.HL(), m.SP,
		m.Flags.S, m.Flags.Z, m.Flags.P, m.Flags.Y)
}
