package mem

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostBootDefaults(t *testing.T) {
	b := NewBus(make([]byte, 0x8000), nil)
	assert.Equal(t, byte(0x91), b.Read8(LCDC))
	assert.Equal(t, byte(0xFC), b.Read8(BGP))
	assert.Equal(t, byte(0x00), b.Read8(LY))
}

func TestBootOverlay(t *testing.T) {
	rom := make([]byte, 0x8000)
	rom[0x0010] = 0xAA

	var boot [256]byte
	boot[0x0010] = 0x55

	b := NewBus(rom, &boot)
	assert.True(t, b.BootActive())
	assert.Equal(t, byte(0x55), b.Read8(0x0010), "boot overlay should shadow ROM")

	b.Write8(BootDisable, 0x01)
	assert.False(t, b.BootActive())
	assert.Equal(t, byte(0xAA), b.Read8(0x0010), "ROM should be visible once overlay is disabled")

	// a nonzero write permanently disables the overlay: a later zero write
	// does not bring it back
	b.Write8(BootDisable, 0x00)
	assert.False(t, b.BootActive())
}

func TestNoBootImageDisablesOverlay(t *testing.T) {
	b := NewBus(make([]byte, 0x8000), nil)
	assert.False(t, b.BootActive())
}

func TestRomWritesIgnored(t *testing.T) {
	b := NewBus(make([]byte, 0x8000), nil)
	b.Write8(0x0150, 0x42)
	assert.Equal(t, byte(0x00), b.Read8(0x0150))
}

func TestEchoRAMMirrorsBothDirections(t *testing.T) {
	b := NewBus(make([]byte, 0x8000), nil)

	b.Write8(0xC010, 0x11)
	assert.Equal(t, byte(0x11), b.Read8(0xE010))

	b.Write8(0xE020, 0x22)
	assert.Equal(t, byte(0x22), b.Read8(0xC020))
}

func TestSerialTap(t *testing.T) {
	var out bytes.Buffer
	b := NewBus(make([]byte, 0x8000), nil)
	b.SerialOut = &out

	b.Write8(SB, 0x41)
	assert.Equal(t, "A", out.String())
}

func TestRead16Write16LittleEndian(t *testing.T) {
	b := NewBus(make([]byte, 0x8000), nil)
	b.Write16(0xC000, 0xBEEF)
	assert.Equal(t, byte(0xEF), b.Read8(0xC000))
	assert.Equal(t, byte(0xBE), b.Read8(0xC001))
	assert.Equal(t, uint16(0xBEEF), b.Read16(0xC000))
}
