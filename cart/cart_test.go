package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeROM(title string, cartType, romSize, ramSize byte) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[titleOffset:], []byte(title))
	rom[typeOffset] = cartType
	rom[romSizeOffset] = romSize
	rom[ramSizeOffset] = ramSize
	rom[checksumAt] = computeChecksum(rom)
	return rom
}

func TestNewDecodesHeaderFields(t *testing.T) {
	rom := makeROM("TESTGAME", 0x00, 0x00, 0x00)
	c := New(rom)

	assert.Equal(t, "TESTGAME", c.Title)
	assert.Equal(t, byte(0x00), c.CartridgeType)
	assert.Equal(t, byte(0x00), c.ROMSizeCode)
	assert.Equal(t, byte(0x00), c.RAMSizeCode)
	assert.True(t, c.ChecksumValid())
}

func TestTitleStopsAtNUL(t *testing.T) {
	rom := makeROM("GB\x00\x00JUNK", 0x00, 0x00, 0x00)
	c := New(rom)
	assert.Equal(t, "GB", c.Title)
}

func TestChecksumMismatchIsNotFatal(t *testing.T) {
	rom := makeROM("BADGAME", 0x00, 0x00, 0x00)
	rom[checksumAt] ^= 0xFF
	c := New(rom)

	assert.False(t, c.ChecksumValid())
	assert.Equal(t, "BADGAME", c.Title, "a bad checksum must not block decoding the rest of the header")
}

func TestTruncatedROMDoesNotPanic(t *testing.T) {
	rom := make([]byte, 0x10)
	assert.NotPanics(t, func() {
		c := New(rom)
		assert.Equal(t, "", c.Title)
		assert.False(t, c.ChecksumValid())
	})
}

func TestROMSizeBytes(t *testing.T) {
	c := New(makeROM("X", 0x00, 0x01, 0x00))
	assert.Equal(t, 64*1024, c.ROMSizeBytes())
}

func TestRAMSizeBytes(t *testing.T) {
	tests := []struct {
		code byte
		want int
	}{
		{0x00, 0},
		{0x02, 8 * 1024},
		{0x03, 32 * 1024},
	}
	for _, tt := range tests {
		c := New(makeROM("X", 0x00, 0x00, tt.code))
		assert.Equal(t, tt.want, c.RAMSizeBytes())
	}
}
