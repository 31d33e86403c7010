package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadWrite(t *testing.T) {
	var b Bus
	b.Write(0x2100, 0x42)
	assert.Equal(t, byte(0x42), b.Read(0x2100))
}

func TestMirror(t *testing.T) {
	var b Bus
	b.Write(0x4100, 0xAB)
	assert.Equal(t, byte(0xAB), b.Read(0x2100), "write above 0x4000 must mirror into work/video RAM")
	assert.Equal(t, byte(0xAB), b.Read(0x4100), "mirrored address reads back the same cell")

	b.Write(0x2200, 0xCD)
	assert.Equal(t, byte(0xCD), b.Read(0x4200), "the mirror is symmetric")
}

func TestLoad(t *testing.T) {
	var b Bus
	b.Load(0x0000, []byte{0x01, 0x02, 0x03})
	assert.Equal(t, byte(0x01), b.Read(0x0000))
	assert.Equal(t, byte(0x03), b.Read(0x0002))
}

func TestSlice(t *testing.T) {
	var b Bus
	b.Write(VideoStart, 0xFF)
	s := b.Slice(VideoStart, VideoEnd)
	assert.Len(t, s, VideoEnd-VideoStart)
	assert.Equal(t, byte(0xFF), s[0])
}
