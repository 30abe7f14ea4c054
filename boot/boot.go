// Package boot builds the 256-byte program the CPU Core executes before the
// cartridge's own entry point at 0x0100 (§4.4). If a real boot image is
// supplied, its DRM check is patched out so it runs correctly against any
// cartridge rather than only licensed ones. Otherwise a synthesized stub
// reproduces the same register/flag state the real boot ROM leaves behind,
// skipping the logo scroll entirely.
package boot

import "fmt"

// Image is the 256-byte program mapped into 0x0000-0x00FF while the boot
// overlay is active. It is an alias for the array type the Memory Bus
// accepts directly as its boot overlay.
type Image = [256]byte

// drmPatchOffsets are the four bytes of the Nintendo logo comparison loop;
// zeroing them turns the check into a no-op so homebrew and unlicensed
// cartridges boot instead of hanging.
var drmPatchOffsets = [4]int{0xE9, 0xEA, 0xFA, 0xFB}

// FromBytes wraps a real boot ROM image, patching out its logo-match DRM
// check. It errors if raw is not exactly 256 bytes.
func FromBytes(raw []byte) (*Image, error) {
	if len(raw) != 256 {
		return nil, fmt.Errorf("boot: image must be 256 bytes, got %d", len(raw))
	}
	var img Image
	copy(img[:], raw)
	for _, off := range drmPatchOffsets {
		img[off] = 0x00
	}
	return &img, nil
}

// Stub synthesizes a boot program that skips the logo scroll but leaves the
// CPU Core in the same state real hardware would: SP at 0xFFFE, flags
// Z=1 N=0 H=1 C=1 (F=0xB0), and the post-logo register values A=0x01 B=0x00
// C=0x13 D=0x00 E=0xD8 H=0x01 L=0x4D. It ends by writing a nonzero value to
// 0xFF50 (register BootDisable), which permanently disables the overlay, the
// same way the real boot ROM hands off to the cartridge.
func Stub() *Image {
	var img Image
	program := []byte{
		0x31, 0xFE, 0xFF, // LD SP,$FFFE

		0x3E, 0x01, // LD A,$01
		0x37,       // SCF (sets C, clears N and H)
		0xCB, 0x7F, // BIT 7,A (sets H, leaves C alone: F becomes Z=1 N=0 H=1 C=1)

		0x06, 0x00, // LD B,$00
		0x0E, 0x13, // LD C,$13
		0x16, 0x00, // LD D,$00
		0x1E, 0xD8, // LD E,$D8
		0x26, 0x01, // LD H,$01
		0x2E, 0x4D, // LD L,$4D
	}
	copy(img[:], program)

	// the final two bytes of the 256-byte image must disable the overlay;
	// everything between the register setup and there is padding the CPU
	// Core executes as NOPs.
	img[0xFE] = 0xE0 // LDH ($FF50),A
	img[0xFF] = 0x50

	return &img
}
