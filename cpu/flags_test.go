package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd8SetsCarryAndZero(t *testing.T) {
	var f Flags
	r := f.add8(0xFF, 0x01, false)
	assert.Equal(t, byte(0x00), r)
	assert.True(t, f.Z)
	assert.True(t, f.Y)
	assert.False(t, f.S)
}

func TestAdd8WithCarryIn(t *testing.T) {
	var f Flags
	r := f.add8(0x01, 0x01, true)
	assert.Equal(t, byte(0x03), r)
	assert.False(t, f.Y)
}

func TestSub8SetsBorrowAndSign(t *testing.T) {
	var f Flags
	r := f.sub8(0x10, 0x20, false)
	assert.Equal(t, byte(0xF0), r)
	assert.True(t, f.S)
	assert.False(t, f.Z)
	assert.True(t, f.Y, "borrow out when subtrahend exceeds minuend")
}

func TestSub8Equal(t *testing.T) {
	var f Flags
	r := f.sub8(0x20, 0x20, false)
	assert.Equal(t, byte(0x00), r)
	assert.True(t, f.Z)
	assert.False(t, f.S)
	assert.False(t, f.Y)
}

func TestLogic8ClearsCarry(t *testing.T) {
	var f Flags
	f.Y = true
	r := f.logic8(0x0F)
	assert.Equal(t, byte(0x0F), r)
	assert.False(t, f.Y)
	assert.False(t, f.Z)
	assert.True(t, f.P, "0x0F has 4 set bits, even parity")
}

func TestPSWRoundTrip(t *testing.T) {
	var f Flags
	f.S, f.Z, f.P, f.Y = true, false, true, true
	b := f.pack()
	assert.True(t, b&0x02 != 0, "bit 1 is always wired high")

	var g Flags
	g.unpack(b)
	assert.Equal(t, f.S, g.S)
	assert.Equal(t, f.Z, g.Z)
	assert.Equal(t, f.P, g.P)
	assert.Equal(t, f.Y, g.Y)
}
