package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invaders8080/mem"
)

func newTestMachine() *Machine {
	return NewMachine(&mem.Bus{})
}

func TestShifterRead(t *testing.T) {
	m := newTestMachine()
	assert.NoError(t, m.out(4, 0xAB))
	assert.NoError(t, m.out(4, 0xCD))
	assert.NoError(t, m.out(2, 3))
	v, err := m.in(3)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x6D), v)
}

func TestShifterOffsetMasksTo3Bits(t *testing.T) {
	m := newTestMachine()
	assert.NoError(t, m.out(2, 0xFF))
	assert.Equal(t, byte(0x07), m.Shifter.Offset)
}

func TestButtonsPacking(t *testing.T) {
	m := newTestMachine()
	m.Buttons = Buttons{Coin: false, P1Start: true, P1Fire: true}
	v, err := m.in(1)
	assert.NoError(t, err)
	assert.Equal(t, byte(1|1<<2|1<<4), v, "coin unset => bit0 set (inverted), p1start => bit2, fire => bit4")

	m.Buttons.Coin = true
	v, err = m.in(1)
	assert.NoError(t, err)
	assert.Equal(t, byte(1<<2|1<<4), v, "coin inserted clears bit0")
}

func TestUnknownPortsHalt(t *testing.T) {
	m := newTestMachine()
	_, err := m.in(7)
	assert.Error(t, err)
	var halt *HaltError
	assert.ErrorAs(t, err, &halt)
	assert.Equal(t, "unknown in port", halt.Reason)

	assert.Error(t, m.out(9, 0))
}

func TestSoundLatches(t *testing.T) {
	m := newTestMachine()
	assert.NoError(t, m.out(3, 0x01))
	assert.NoError(t, m.out(5, 0x02))
	assert.Equal(t, byte(0x01), m.Port3)
	assert.Equal(t, byte(0x02), m.Port5)
}
