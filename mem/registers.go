package mem

// HardwareAddress identifies one of the memory-mapped I/O registers in the
// 0xFF00-0xFF7F window, plus the interrupt-enable register at 0xFFFF.
type HardwareAddress = uint16

// Register addresses. Only the serial (SB) and boot-overlay (BootDisable)
// slots have write side effects, and LY is advanced by the display pass;
// the rest are preserved
// as plain storage so that audio/timer/joypad register layout matches real
// hardware even though those subsystems are not emulated (see DESIGN.md).
const (
	P1   HardwareAddress = 0xFF00 // joypad
	SB   HardwareAddress = 0xFF01 // serial transfer data
	SC   HardwareAddress = 0xFF02 // serial transfer control
	DIV  HardwareAddress = 0xFF04
	TIMA HardwareAddress = 0xFF05
	TMA  HardwareAddress = 0xFF06
	TAC  HardwareAddress = 0xFF07
	IF   HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	NR52 HardwareAddress = 0xFF26

	// LCDC controls what the display pass composites.
	//
	//  Bit 7: LCD enable
	//  Bit 6: Window tile map select (0=0x9800, 1=0x9C00)
	//  Bit 5: Window display enable
	//  Bit 4: BG & window tile data select (0=0x8800 signed, 1=0x8000 unsigned)
	//  Bit 3: BG tile map select (0=0x9800, 1=0x9C00)
	//  Bit 2: Sprite size (unused here)
	//  Bit 1: Sprite display enable (recognised, not rendered)
	//  Bit 0: BG/window display enable
	LCDC HardwareAddress = 0xFF40
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY is the current scanline; this core advances it 0..153 in lockstep
	// with the display pass rather than pinning it at 144.
	LY   HardwareAddress = 0xFF44
	LYC  HardwareAddress = 0xFF45
	DMA  HardwareAddress = 0xFF46
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B

	// BootDisable is written to disable the boot overlay (§4.1). Any
	// nonzero write, once, permanently lifts it.
	BootDisable HardwareAddress = 0xFF50

	IE HardwareAddress = 0xFFFF
)

// defaults holds the post-boot values the hardware's internal boot leaves
// behind, applied at Bus construction (§3, §6).
var defaults = map[HardwareAddress]byte{
	P1:   0x00,
	SB:   0x00,
	SC:   0x00,
	DIV:  0x00,
	TIMA: 0x00,
	TMA:  0x00,
	TAC:  0x00,
	NR10: 0x80,
	NR11: 0xBF,
	NR12: 0xF3,
	NR14: 0xBF,
	NR21: 0x3F,
	NR22: 0x00,
	NR24: 0xBF,
	NR30: 0x7F,
	NR31: 0xFF,
	NR32: 0x9F,
	NR34: 0xBF,
	0xFF20: 0xFF, // NR41
	NR42:   0x00,
	NR43:   0x00,
	NR44:   0xBF,
	NR50:   0x77,
	NR51:   0xF3,
	NR52:   0xF1,
	LCDC:   0x91,
	SCY:    0x00,
	SCX:    0x00,
	LY:     0x00,
	LYC:    0x00,
	BGP:    0xFC,
	OBP0:   0xFF,
	OBP1:   0xFF,
	WY:     0x00,
	WX:     0x00,
	IE:     0x00,
}
