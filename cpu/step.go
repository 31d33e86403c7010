package cpu

// Step retires a single instruction and returns the number of clock cycles
// it consumed. Before fetching, it services the interrupt scheduler: once
// Cycle has reached NextWakeup, the pending RST opcode is dispatched
// exactly as if it had arrived over the data bus, but only when interrupts
// are enabled — a disabled interrupt is dropped, not queued, so the ROM
// never sees it later.
//
// Step is generic over TraceFunc so a caller that passes NopTrace pays
// nothing for the observation hook; a caller driving a real tracer gets a
// formatted line per retired instruction, emitted before that instruction's
// effects become observable.
//
// A non-nil error is always a *HaltError: an undocumented opcode, an
// undocumented I/O port, or HLT. Once Step has returned an error the
// Machine is halted — further calls return the same error immediately
// without touching memory or registers again.
func Step[T TraceFunc](m *Machine, trace T) (int, error) {
	if m.halted != nil {
		return 0, m.halted
	}

	dispatched, cycles, err := serviceInterrupts(m, trace)
	if err != nil {
		if halt, ok := err.(*HaltError); ok {
			m.halted = halt
		}
		return 0, err
	}
	if dispatched {
		return cycles, nil
	}

	pc := m.PC
	opcode := m.fetch8()

	if opcode == 0x76 { // HLT
		err := &HaltError{Reason: "halt", Opcode: opcode, PC: pc, ICount: m.ICount}
		m.halted = err
		traceStep(m, trace, pc, opcode, "HLT", nil)
		m.Cycle += 7 // HLT's documented cost; §8's cycle invariant holds even for the terminal instruction
		return 0, err
	}

	entry := table[opcode]
	if entry == nil {
		err := &HaltError{Reason: "unknown opcode", Opcode: opcode, PC: pc, ICount: m.ICount}
		m.halted = err
		return 0, err
	}

	traceStep(m, trace, pc, opcode, entry.name, []byte{m.readByte(pc + 1), m.readByte(pc + 2)})

	cycles, err = entry.exec(m)
	if err != nil {
		if halt, ok := err.(*HaltError); ok {
			halt.PC = pc
			halt.ICount = m.ICount
			m.halted = halt
		}
		return 0, err
	}

	m.Cycle += uint64(cycles)
	m.ICount++
	return cycles, nil
}

// serviceInterrupts injects the pending RST opcode once Cycle has crossed
// NextWakeup, alternating between the mid-screen and end-of-frame vectors
// every half frame. The injected RST is dispatched through the same opcode
// table as any fetched instruction, so its cycle cost and tracing follow
// the normal path; only its opcode didn't come from PC. When it fires,
// dispatched is true and Step must not also fetch a normal instruction this
// call — the RST itself is the retired instruction.
func serviceInterrupts[T TraceFunc](m *Machine, trace T) (dispatched bool, cycles int, err error) {
	if m.Cycle < m.NextWakeup {
		return false, 0, nil
	}
	m.NextWakeup += CyclesPerHalfFrame
	op := m.NextInterruptOp
	m.NextInterruptOp ^= rstMidScreen ^ rstEndFrame

	if !m.InterruptsEnabled {
		return false, 0, nil
	}

	entry := table[op]
	traceStep(m, trace, m.PC, op, entry.name+"(interrupt)", nil)
	cycles, err = entry.exec(m)
	if err != nil {
		return true, 0, err
	}
	m.Cycle += uint64(cycles)
	m.ICount++
	return true, cycles, nil
}
