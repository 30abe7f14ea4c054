package boot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBytesRequiresExactLength(t *testing.T) {
	_, err := FromBytes(make([]byte, 100))
	assert.Error(t, err)
}

func TestFromBytesPatchesDRM(t *testing.T) {
	raw := make([]byte, 256)
	for _, off := range drmPatchOffsets {
		raw[off] = 0xFF
	}

	img, err := FromBytes(raw)
	assert.NoError(t, err)
	for _, off := range drmPatchOffsets {
		assert.Equal(t, byte(0x00), img[off])
	}
}

func TestFromBytesPreservesNonDRMBytes(t *testing.T) {
	raw := make([]byte, 256)
	raw[0x00] = 0x31
	raw[0x01] = 0xFE

	img, err := FromBytes(raw)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x31), img[0x00])
	assert.Equal(t, byte(0xFE), img[0x01])
}

func TestStubDisablesOverlayAtEnd(t *testing.T) {
	img := Stub()
	assert.Equal(t, byte(0xE0), img[0xFE], "final two bytes must be LDH ($FF50),A")
	assert.Equal(t, byte(0x50), img[0xFF])
}

func TestStubSetsStackPointerLoad(t *testing.T) {
	img := Stub()
	assert.Equal(t, byte(0x31), img[0x00], "LD SP,$FFFE opcode")
	assert.Equal(t, byte(0xFE), img[0x01])
	assert.Equal(t, byte(0xFF), img[0x02])
}
