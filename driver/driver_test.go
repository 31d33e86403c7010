package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invaders8080/cpu"
	"invaders8080/mem"
)

func newMachine(program []byte) *cpu.Machine {
	bus := &mem.Bus{}
	bus.Load(0, program)
	return cpu.NewMachine(bus)
}

func TestRunBatchStopsAtInstructionBudget(t *testing.T) {
	// An infinite loop: JMP 0x0000.
	m := newMachine([]byte{0xC3, 0x00, 0x00})
	res := RunBatch(m, cpu.NopTrace, 100)
	assert.NoError(t, res.Err)
	assert.Equal(t, uint64(100), res.Instructions)
}

func TestRunBatchHaltsOnUnknownOpcode(t *testing.T) {
	m := newMachine([]byte{0xED}) // an undocumented opcode alias, deliberately not implemented
	res := RunBatch(m, cpu.NopTrace, 0)
	assert.Error(t, res.Err)
	var halt *cpu.HaltError
	assert.ErrorAs(t, res.Err, &halt)
	assert.Equal(t, "unknown opcode", halt.Reason)
}

func TestRunBatchHaltsOnHLT(t *testing.T) {
	m := newMachine([]byte{0x00, 0x76}) // NOP then HLT
	res := RunBatch(m, cpu.NopTrace, 0)
	assert.Error(t, res.Err)
	var halt *cpu.HaltError
	assert.ErrorAs(t, res.Err, &halt)
	assert.Equal(t, "halt", halt.Reason)
	assert.Equal(t, uint64(1), res.Instructions, "the NOP before HLT should still count")
}

func TestRunBenchmarkReportsThroughput(t *testing.T) {
	m := newMachine([]byte{0xC3, 0x00, 0x00}) // JMP 0x0000
	res := RunBenchmark(m, cpu.CyclesPerHalfFrame)
	assert.GreaterOrEqual(t, res.Cycles, uint64(cpu.CyclesPerHalfFrame))
	assert.Greater(t, res.Simulated.Nanoseconds(), int64(0))
}

func TestSoundEdgesOnlyRisingBits(t *testing.T) {
	before := SoundLatch{Port3: 0b0000_0001, Port5: 0}
	after := SoundLatch{Port3: 0b0000_0011, Port5: 0b0000_0100}
	p3, p5 := SoundEdges(before, after)
	assert.Equal(t, byte(0b0000_0010), p3, "bit 0 was already high, only bit 1's rising edge should report")
	assert.Equal(t, byte(0b0000_0100), p5)
}

func TestCaptureSoundLatch(t *testing.T) {
	m := newMachine(nil)
	m.Port3, m.Port5 = 0x11, 0x22
	got := CaptureSoundLatch(m)
	assert.Equal(t, SoundLatch{Port3: 0x11, Port5: 0x22}, got)
}
