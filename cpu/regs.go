package cpu

// The 8080 encodes an 8-bit register operand as a 3-bit field within the
// opcode byte: 000=B 001=C 010=D 011=E 100=H 101=L 110=M(HL indirect) 111=A.
// readReg/writeReg decode that field; every MOV/ALU/INR/DCR/MVI table entry
// is built by iterating it, rather than hand-enumerating 64+ opcodes.

func (m *Machine) readReg(code byte) byte {
	switch code {
	case 0:
		return m.B
	case 1:
		return m.C
	case 2:
		return m.D
	case 3:
		return m.E
	case 4:
		return m.H
	case 5:
		return m.L
	case 6:
		return m.readByte(m.HL())
	default: // 7
		return m.A
	}
}

func (m *Machine) writeReg(code byte, v byte) {
	switch code {
	case 0:
		m.B = v
	case 1:
		m.C = v
	case 2:
		m.D = v
	case 3:
		m.E = v
	case 4:
		m.H = v
	case 5:
		m.L = v
	case 6:
		m.writeByte(m.HL(), v)
	default: // 7
		m.A = v
	}
}

// regName is used only by the default tracer's formatted mnemonics.
var regName = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// The 2-bit rp field selects a 16-bit register pair for LXI/INX/DCX/DAD:
// 00=BC 01=DE 10=HL 11=SP.

func (m *Machine) getRP(code byte) uint16 {
	switch code {
	case 0:
		return m.BC()
	case 1:
		return m.DE()
	case 2:
		return m.HL()
	default: // 3
		return m.SP
	}
}

func (m *Machine) setRP(code byte, v uint16) {
	switch code {
	case 0:
		m.SetBC(v)
	case 1:
		m.SetDE(v)
	case 2:
		m.SetHL(v)
	default: // 3
		m.SP = v
	}
}

// rpName mirrors getRP/setRP's encoding for tracing.
var rpName = [4]string{"BC", "DE", "HL", "SP"}

// PUSH/POP use the same 2-bit field, but rp=3 selects PSW (A + flags)
// instead of SP.

func (m *Machine) pushRP(code byte) {
	if code == 3 {
		m.push16(uint16(m.A)<<8 | uint16(m.Flags.pack()))
		return
	}
	m.push16(m.getRP(code))
}

func (m *Machine) popRP(code byte) {
	if code == 3 {
		v := m.pop16()
		m.A = byte(v >> 8)
		m.Flags.unpack(byte(v))
		return
	}
	m.setRP(code, m.pop16())
}

// pushPopName mirrors PUSH/POP's rp encoding (rp=3 is PSW, not SP) for
// tracing.
var pushPopName = [4]string{"BC", "DE", "HL", "PSW"}

// condition evaluates one of the 8080's 8 branch conditions, encoded as a
// 3-bit field: 000=NZ 001=Z 010=NC 011=C 100=PO 101=PE 110=P 111=M.
func (m *Machine) condition(code byte) bool {
	switch code {
	case 0:
		return !m.Flags.Z
	case 1:
		return m.Flags.Z
	case 2:
		return !m.Flags.Y
	case 3:
		return m.Flags.Y
	case 4:
		return !m.Flags.P
	case 5:
		return m.Flags.P
	case 6:
		return !m.Flags.S
	default: // 7
		return m.Flags.S
	}
}

var condName = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}
