package cpu

// opEntry is one row of the 256-entry opcode table: a table-driven dispatch
// keeps every opcode local and inlinable. exec performs the instruction's
// effect and returns the number of clock cycles it actually cost —
// conditional branches report the taken or not-taken cost as appropriate.
// Only IN/OUT can return a non-nil error (an undocumented port), so every
// other constructor bakes in a nil.
type opEntry struct {
	name string
	exec func(m *Machine) (int, error)
}

var table [256]*opEntry

// fixed wraps an instruction with no conditional cycle cost and no way to fail.
func fixed(name string, fn func(*Machine), cycles int) *opEntry {
	return &opEntry{name: name, exec: func(m *Machine) (int, error) { fn(m); return cycles, nil }}
}

// branching wraps a conditional CALL/RET whose cost differs when the
// condition is false.
func branching(name string, fn func(*Machine) bool, takenCycles, notTakenCycles int) *opEntry {
	return &opEntry{name: name, exec: func(m *Machine) (int, error) {
		if fn(m) {
			return takenCycles, nil
		}
		return notTakenCycles, nil
	}}
}

// fallible wraps IN/OUT, the only instructions that can halt the machine
// mid-execution (an undocumented port).
func fallible(name string, fn func(*Machine) error, cycles int) *opEntry {
	return &opEntry{name: name, exec: func(m *Machine) (int, error) { return cycles, fn(m) }}
}

func set(op byte, e *opEntry) {
	if table[op] != nil {
		panic("opcode registered twice: " + e.name)
	}
	table[op] = e
}

func init() {
	set(0x00, fixed("NOP", nop, 4))

	// MOV dst,src (01DDDSSS) and the one exception, HLT, which reuses the
	// MOV M,M bit pattern. HLT is special-cased in Step, not this table,
	// since it reports a HaltError rather than an int cycle cost.
	for dst := byte(0); dst < 8; dst++ {
		for src := byte(0); src < 8; src++ {
			op := 0x40 | dst<<3 | src
			if op == 0x76 {
				continue
			}
			cycles := 5
			if dst == 6 || src == 6 {
				cycles = 7
			}
			set(op, fixed("MOV "+regName[dst]+","+regName[src], movRR(dst, src), cycles))
		}
	}

	// ALU reg/M group (10GGGSSS): ADD ADC SUB SBB ANA XRA ORA CMP.
	aluNames := [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
	for group := byte(0); group < 8; group++ {
		for src := byte(0); src < 8; src++ {
			op := 0x80 | group<<3 | src
			cycles := 4
			if src == 6 {
				cycles = 7
			}
			var fn func(*Machine)
			switch group {
			case 0:
				fn = addR(src, false)
			case 1:
				fn = addR(src, true)
			case 2:
				fn = subR(src, false)
			case 3:
				fn = subR(src, true)
			case 4:
				fn = anaR(src)
			case 5:
				fn = xraR(src)
			case 6:
				fn = oraR(src)
			default:
				fn = cmpR(src)
			}
			set(op, fixed(aluNames[group]+" "+regName[src], fn, cycles))
		}
	}

	// INR/DCR r (00DDD100 / 00DDD101).
	for reg := byte(0); reg < 8; reg++ {
		cycles := 5
		if reg == 6 {
			cycles = 10
		}
		set(0x04|reg<<3, fixed("INR "+regName[reg], incR(reg), cycles))
		set(0x05|reg<<3, fixed("DCR "+regName[reg], decR(reg), cycles))
	}

	// MVI r,data (00DDD110).
	for reg := byte(0); reg < 8; reg++ {
		cycles := 7
		if reg == 6 {
			cycles = 10
		}
		set(0x06|reg<<3, fixed("MVI "+regName[reg], mviR(reg), cycles))
	}

	// 16-bit register-pair ops (00RP____).
	for rp := byte(0); rp < 4; rp++ {
		set(0x01|rp<<4, fixed("LXI "+rpName[rp], lxiRP(rp), 10))
		set(0x03|rp<<4, fixed("INX "+rpName[rp], inxRP(rp), 5))
		set(0x0B|rp<<4, fixed("DCX "+rpName[rp], dcxRP(rp), 5))
		set(0x09|rp<<4, fixed("DAD "+rpName[rp], dadRP(rp), 10))
	}
	// STAX/LDAX only exist for BC and DE.
	for rp := byte(0); rp < 2; rp++ {
		set(0x02|rp<<4, fixed("STAX "+rpName[rp], staxRP(rp), 7))
		set(0x0A|rp<<4, fixed("LDAX "+rpName[rp], ldaxRP(rp), 7))
	}

	// PUSH/POP (11RP____); rp=3 selects PSW, not SP.
	for rp := byte(0); rp < 4; rp++ {
		set(0xC5|rp<<4, fixed("PUSH "+pushPopName[rp], pushRPOp(rp), 11))
		set(0xC1|rp<<4, fixed("POP "+pushPopName[rp], popRPOp(rp), 10))
	}

	// Rotates.
	set(0x07, fixed("RLC", rlc, 4))
	set(0x0F, fixed("RRC", rrc, 4))
	set(0x17, fixed("RAL", ral, 4))
	set(0x1F, fixed("RAR", rar, 4))

	// Direct-address loads/stores.
	set(0x22, fixed("SHLD", shld, 16))
	set(0x2A, fixed("LHLD", lhld, 16))
	set(0x32, fixed("STA", staDirect, 13))
	set(0x3A, fixed("LDA", ldaDirect, 13))

	// Control transfer.
	set(0xC3, fixed("JMP", jmpDirect, 10))
	set(0xC9, fixed("RET", retDirect, 10))
	set(0xCD, fixed("CALL", callDirect, 17))
	for cond := byte(0); cond < 8; cond++ {
		// Conditional JMP costs the same whether or not it branches; only
		// CALL/RET vary. Real 8080 Jcc is a constant 10 cycles regardless
		// of outcome.
		set(0xC2|cond<<3, fixed("J"+condName[cond], jcc(cond), 10))
		set(0xC4|cond<<3, branching("C"+condName[cond], ccc(cond), 17, 11))
		set(0xC0|cond<<3, branching("R"+condName[cond], rcc(cond), 11, 5))
	}
	for n := byte(0); n < 8; n++ {
		set(0xC7|n<<3, fixed("RST", rst(n), 11))
	}
	set(0xE9, fixed("PCHL", pchl, 5))
	set(0xEB, fixed("XCHG", xchg, 5))
	set(0xE3, fixed("XTHL", xthl, 18))
	set(0xF9, fixed("SPHL", sphl, 5))

	// ALU immediate group (11GGG110).
	aluImmNames := [8]string{"ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI"}
	aluImmFns := [8]func(*Machine){
		adiImm(false), adiImm(true), sbiImm(false), sbiImm(true),
		aniImm, xriImm, oriImm, cpiImm,
	}
	for group := byte(0); group < 8; group++ {
		set(0xC6|group<<3, fixed(aluImmNames[group], aluImmFns[group], 7))
	}

	// I/O.
	set(0xDB, fallible("IN", execIN, 10))
	set(0xD3, fallible("OUT", execOUT, 10))

	// Misc.
	set(0x2F, fixed("CMA", cma, 4))
	set(0x37, fixed("STC", stc, 4))
	set(0x3F, fixed("CMC", cmc, 4))
	set(0x27, fixed("DAA", daa, 4))
	set(0xF3, fixed("DI", di, 4))
	set(0xFB, fixed("EI", ei, 4))
}
