// Package cart decodes the 0x0100-0x014F cartridge header and exposes the
// raw ROM bytes the Memory Bus maps into 0x0000-0x7FFF.
package cart

import (
	"fmt"
	"strings"
)

// Header field offsets, relative to the start of the ROM image.
// https://gbdev.io/pandocs/The_Cartridge_Header.html
const (
	titleOffset   = 0x0134
	titleLen      = 16 // covers the 11-byte short form too; trailing bytes read as 0x00
	typeOffset    = 0x0147
	romSizeOffset = 0x0148
	ramSizeOffset = 0x0149
	checksumStart = 0x0134
	checksumEnd   = 0x014C
	checksumAt    = 0x014D
)

// Cartridge is the decoded header plus the untouched ROM image it was read
// from.
type Cartridge struct {
	ROM []byte

	Title          string
	CartridgeType  byte
	ROMSizeCode    byte
	RAMSizeCode    byte
	HeaderChecksum byte

	computedChecksum byte
}

// New parses rom's header. It never errors: a truncated or malformed image
// yields a Cartridge whose ChecksumValid is false, which `info` reports and
// `run` treats as a warning (§7 DecodeError).
func New(rom []byte) *Cartridge {
	c := &Cartridge{ROM: rom}

	c.Title = decodeTitle(rom)
	c.CartridgeType = byteAt(rom, typeOffset)
	c.ROMSizeCode = byteAt(rom, romSizeOffset)
	c.RAMSizeCode = byteAt(rom, ramSizeOffset)
	c.HeaderChecksum = byteAt(rom, checksumAt)
	c.computedChecksum = computeChecksum(rom)

	return c
}

func byteAt(rom []byte, offset int) byte {
	if offset >= len(rom) {
		return 0
	}
	return rom[offset]
}

func decodeTitle(rom []byte) string {
	end := titleOffset + titleLen
	if end > len(rom) {
		end = len(rom)
	}
	if titleOffset >= len(rom) {
		return ""
	}
	raw := rom[titleOffset:end]
	// Stop at the first NUL; title slots shorter than titleLen are
	// zero-padded.
	if i := strings.IndexByte(string(raw), 0x00); i >= 0 {
		raw = raw[:i]
	}
	return string(raw)
}

// computeChecksum reproduces the header checksum algorithm: starting from
// zero, subtract each header byte and 1, wrapping modulo 256.
func computeChecksum(rom []byte) byte {
	var x byte
	for offset := checksumStart; offset <= checksumEnd; offset++ {
		x = x - byteAt(rom, offset) - 1
	}
	return x
}

// ChecksumValid reports whether the header checksum byte matches the bytes
// it is supposed to cover.
func (c *Cartridge) ChecksumValid() bool {
	return c.HeaderChecksum == c.computedChecksum
}

// ROMSizeBytes returns the ROM size advertised by the header: 32 KiB shifted
// left by the size code.
func (c *Cartridge) ROMSizeBytes() int {
	return 32 * 1024 << c.ROMSizeCode
}

// RAMSizeBytes returns the cartridge RAM size advertised by the header.
func (c *Cartridge) RAMSizeBytes() int {
	switch c.RAMSizeCode {
	case 0x00:
		return 0
	case 0x01:
		return 2 * 1024
	case 0x02:
		return 8 * 1024
	case 0x03:
		return 32 * 1024
	case 0x04:
		return 128 * 1024
	case 0x05:
		return 64 * 1024
	default:
		return 0
	}
}

// String renders the header fields the way `info` prints them.
func (c *Cartridge) String() string {
	return fmt.Sprintf(
		"Title:          %s\nCartridge Type: 0x%02X\nROM Size:       %d bytes\nRAM Size:       %d bytes\nChecksum:       0x%02X (computed 0x%02X, valid=%v)",
		c.Title, c.CartridgeType, c.ROMSizeBytes(), c.RAMSizeBytes(), c.HeaderChecksum, c.computedChecksum, c.ChecksumValid(),
	)
}
