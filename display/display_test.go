package display

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gbcore/mem"
)

func newTestBus() *mem.Bus {
	return mem.NewBus(make([]byte, 0x8000), nil)
}

func TestRenderWithLCDDisabledIsBlank(t *testing.T) {
	bus := newTestBus()
	bus.Write8(mem.LCDC, 0x00)
	f := Render(bus)
	assert.Equal(t, dmgShades[0], f.Pixels[0][0])
}

func TestDecodePaletteMapsAllFourShades(t *testing.T) {
	p := decodePalette(0b11_10_01_00)
	assert.Equal(t, dmgShades[0], p[0])
	assert.Equal(t, dmgShades[1], p[1])
	assert.Equal(t, dmgShades[2], p[2])
	assert.Equal(t, dmgShades[3], p[3])
}

func TestTileAddressUnsignedMode(t *testing.T) {
	assert.Equal(t, uint16(0x8000), tileAddress(0x10, 0x00))
	assert.Equal(t, uint16(0x8010), tileAddress(0x10, 0x01))
}

func TestTileAddressSignedMode(t *testing.T) {
	assert.Equal(t, uint16(0x9000), tileAddress(0x00, 0x00))
	assert.Equal(t, uint16(0x8FF0), tileAddress(0x00, 0xFF)) // tile -1
}

func TestTilePixelDecodesBitPlanes(t *testing.T) {
	bus := newTestBus()
	// row 0: low=0b10000000, high=0b00000000 -> shade 1 at x=0
	bus.Write8(0x8000, 0b1000_0000)
	bus.Write8(0x8001, 0b0000_0000)
	assert.Equal(t, byte(1), tilePixel(bus, 0x8000, 0, 0))

	// row 0 with both planes set -> shade 3
	bus.Write8(0x8000, 0b1000_0000)
	bus.Write8(0x8001, 0b1000_0000)
	assert.Equal(t, byte(3), tilePixel(bus, 0x8000, 0, 0))
}

func TestRenderBackgroundDrawsMapOriginTile(t *testing.T) {
	bus := newTestBus()
	bus.Write8(mem.LCDC, 0x91) // LCD on, BG on, unsigned tile addressing
	bus.Write8(mem.BGP, 0b11_10_01_00)
	bus.Write8(mem.SCX, 0)
	bus.Write8(mem.SCY, 0)

	// tile 1 at map origin, solid shade-3 tile
	bus.Write8(0x9800, 0x01)
	for row := 0; row < 8; row++ {
		bus.Write8(0x8010+uint16(row*2), 0xFF)
		bus.Write8(0x8011+uint16(row*2), 0xFF)
	}

	f := Render(bus)
	assert.Equal(t, dmgShades[3], f.Pixels[0][0])
}

func TestAdvanceScanlineWrapsAt154(t *testing.T) {
	bus := newTestBus()
	bus.Write8(mem.LY, 153)
	complete := AdvanceScanline(bus)
	assert.True(t, complete)
	assert.Equal(t, byte(0), bus.Read8(mem.LY))
}

func TestAdvanceScanlineDoesNotWrapAt144(t *testing.T) {
	bus := newTestBus()
	bus.Write8(mem.LY, 143)
	complete := AdvanceScanline(bus)
	assert.False(t, complete)
	assert.Equal(t, byte(144), bus.Read8(mem.LY))
}
