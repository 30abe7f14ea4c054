// Package display implements the Display Pass: tile decode, background and
// window compositing, and scanline timing (§4.3). Render is a pure function
// over bus-visible state; AdvanceScanline writes LY. The package owns no
// window or event loop of its own,
// leaving presentation to whatever HostSurface the Frame Loop is driving.
package display

import (
	"gbcore/mask"
	"gbcore/mem"
)

const (
	Width  = 160
	Height = 144

	cyclesPerScanline = 456
	scanlinesPerFrame = 154
)

// Color is a DMG grayscale shade, expressed as RGBA so a HostSurface can
// blit it without knowing about Game Boy palettes.
type Color struct {
	R, G, B, A byte
}

// dmgShades is the 4-shade "classic" palette, light to dark, index by the
// 2-bit value a BGP/OBP0/OBP1 palette register maps a pixel to.
var dmgShades = [4]Color{
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF},
	{R: 0x60, G: 0x60, B: 0x60, A: 0xFF},
	{R: 0x00, G: 0x00, B: 0x00, A: 0xFF},
}

// Frame is one composited 160x144 image.
type Frame struct {
	Pixels [Height][Width]Color
}

// decodePalette expands a palette register into 4 shade lookups: bits
// [1:0], [3:2], [5:4], [7:6] each select one of the 4 dmgShades entries.
func decodePalette(reg byte) [4]Color {
	var p [4]Color
	for i := range p {
		p[i] = dmgShades[(reg>>(uint(i)*2))&0x03]
	}
	return p
}

// tilePixel returns the 2-bit shade index (0-3) of pixel (x,y) within the
// 16-byte tile starting at addr: each row is 2 bytes, low and high bit
// planes, matching the hardware's tile format.
func tilePixel(bus *mem.Bus, addr uint16, x, y int) byte {
	row := addr + uint16(y*2)
	lo := bus.Read8(row)
	hi := bus.Read8(row + 1)
	bit := uint(7 - x)
	low := (lo >> bit) & 0x01
	high := (hi >> bit) & 0x01
	return high<<1 | low
}

// tileAddress resolves a tile id to its 16-byte data address, honoring
// LCDC bit 4's addressing mode switch: the 0x8000 method is unsigned
// (tileID directly), the 0x8800 method treats tileID as signed relative
// to 0x9000 (§4.3).
func tileAddress(lcdc byte, tileID byte) uint16 {
	if mask.IsSet(lcdc, mask.I4) {
		return 0x8000 + uint16(tileID)*16
	}
	return uint16(int32(0x9000) + int32(int8(tileID))*16)
}

// Render composites the current background and window planes into a Frame,
// honoring LCDC's enable bits and BGP palette. Sprites are not composited
// (§1: sprite OAM rendering is out of scope).
func Render(bus *mem.Bus) *Frame {
	f := &Frame{}

	lcdc := bus.Read8(mem.LCDC)
	bgp := decodePalette(bus.Read8(mem.BGP))

	for y := range f.Pixels {
		for x := range f.Pixels[y] {
			f.Pixels[y][x] = bgp[0]
		}
	}

	if !mask.IsSet(lcdc, mask.I1) {
		return f // LCD disabled entirely
	}

	if mask.IsSet(lcdc, mask.I8) {
		renderBackground(bus, f, lcdc, bgp)
	}
	if mask.IsSet(lcdc, mask.I3) {
		renderWindow(bus, f, lcdc, bgp)
	}

	return f
}

func renderBackground(bus *mem.Bus, f *Frame, lcdc byte, palette [4]Color) {
	scy := bus.Read8(mem.SCY)
	scx := bus.Read8(mem.SCX)

	mapBase := uint16(0x9800)
	if mask.IsSet(lcdc, mask.I5) {
		mapBase = 0x9C00
	}

	for y := 0; y < Height; y++ {
		bgY := byte(y) + scy
		tileRow := int(bgY) / 8
		rowInTile := int(bgY) % 8
		for x := 0; x < Width; x++ {
			bgX := byte(x) + scx
			tileCol := int(bgX) / 8
			colInTile := int(bgX) % 8

			tileID := bus.Read8(mapBase + uint16(tileRow*32+tileCol))
			addr := tileAddress(lcdc, tileID)
			shade := tilePixel(bus, addr, colInTile, rowInTile)
			f.Pixels[y][x] = palette[shade]
		}
	}
}

func renderWindow(bus *mem.Bus, f *Frame, lcdc byte, palette [4]Color) {
	wx := int(bus.Read8(mem.WX)) - 7
	wy := int(bus.Read8(mem.WY))

	mapBase := uint16(0x9800)
	if mask.IsSet(lcdc, mask.I2) {
		mapBase = 0x9C00
	}

	for y := 0; y < Height; y++ {
		if y < wy {
			continue
		}
		winRow := (y - wy) / 8
		rowInTile := (y - wy) % 8
		for x := 0; x < Width; x++ {
			if x < wx {
				continue
			}
			winCol := (x - wx) / 8
			colInTile := (x - wx) % 8

			tileID := bus.Read8(mapBase + uint16(winRow*32+winCol))
			addr := tileAddress(lcdc, tileID)
			shade := tilePixel(bus, addr, colInTile, rowInTile)
			f.Pixels[y][x] = palette[shade]
		}
	}
}

// AdvanceScanline increments LY (register 0xFF44), wrapping 0..153 rather
// than pinning it at 144 (§9's correction of the reference
// implementation). It reports whether the increment completed a full
// frame (LY wrapped back to 0).
func AdvanceScanline(bus *mem.Bus) (frameComplete bool) {
	ly := bus.Read8(mem.LY)
	ly++
	if ly >= scanlinesPerFrame {
		ly = 0
		frameComplete = true
	}
	bus.Write8(mem.LY, ly)
	return frameComplete
}

// CyclesPerScanline and CyclesPerFrame are the timing constants the Frame
// Loop uses to decide when to call AdvanceScanline and Render.
const (
	CyclesPerScanline = cyclesPerScanline
	CyclesPerFrame    = cyclesPerScanline * scanlinesPerFrame
)
