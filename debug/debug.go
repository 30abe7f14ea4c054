// Package debug provides the crash-dump writer and the interactive
// bubbletea inspector used by `gbcore run --debug` (§4.7). Both render the
// same register/flag snapshot the reference implementation's `dump`
// function wrote to crash.txt, plus a full memory hex dump via
// go-spew.
package debug

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"gbcore/cpu"
	"gbcore/mem"
)

// Snapshot is everything a crash dump or the inspector needs to render: the
// Core's register file and the Bus's full backing array.
type Snapshot struct {
	PC, SP     uint16
	A, F       byte
	B, C       byte
	D, E       byte
	H, L       byte
	IME        bool
	Halt, Stop bool
	LastPC     uint16
	LastOp     string
	Memory     *[65536]byte
}

// Capture reads c and bus into a Snapshot, for WriteCrashDump and the
// inspector alike.
func Capture(c *cpu.Cpu, bus *mem.Bus) Snapshot {
	lastPC, lastOp := c.LastDecoded()
	return Snapshot{
		PC: c.PC, SP: c.SP,
		A: c.A, F: c.F,
		B: c.B, C: c.C,
		D: c.D, E: c.E,
		H: c.H, L: c.L,
		IME: c.IME, Halt: c.Halt, Stop: c.Stop,
		LastPC: lastPC, LastOp: lastOp,
		Memory: bus.Raw(),
	}
}

// registerLine renders the register/flag portion shared by the crash dump
// and the inspector's status pane.
func (s Snapshot) registerLine() string {
	flag := func(set bool, letter string) string {
		if set {
			return letter
		}
		return "-"
	}
	return fmt.Sprintf(
		"PC=%04X SP=%04X A=%02X F=%02X [%s%s%s%s] B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X IME=%v HALT=%v STOP=%v\nlast: %04X %s",
		s.PC, s.SP, s.A, s.F,
		flag(s.F&0x80 != 0, "Z"), flag(s.F&0x40 != 0, "N"), flag(s.F&0x20 != 0, "H"), flag(s.F&0x10 != 0, "C"),
		s.B, s.C, s.D, s.E, s.H, s.L,
		s.IME, s.Halt, s.Stop,
		s.LastPC, s.LastOp,
	)
}

// WriteCrashDump writes a human-readable register dump followed by a full
// 64 KiB memory hex dump to w, the same two-part shape the reference
// implementation's crash.txt used (register summary, then memory).
func WriteCrashDump(w io.Writer, reason string, s Snapshot) error {
	parts := []string{
		reason,
		"",
		s.registerLine(),
		"",
		spew.Sdump(*s.Memory),
	}
	_, err := io.WriteString(w, strings.Join(parts, "\n"))
	return err
}

// model is the bubbletea inspector: a single-step view over the Core and
// Bus, advanced one instruction per keypress.
type model struct {
	cpu *cpu.Cpu
	bus *mem.Bus
	err error
}

// NewInspector constructs the interactive inspector over a running Core.
func NewInspector(c *cpu.Cpu, bus *mem.Bus) tea.Model {
	return model{cpu: c, bus: bus}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "j":
			if _, err := m.cpu.Tick(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m model) memoryPage(start uint16) string {
	s := fmt.Sprintf("%04X | ", start)
	for i := 0; i < 16; i++ {
		addr := start + uint16(i)
		b := m.bus.Read8(addr)
		if addr == m.cpu.PC {
			s += fmt.Sprintf("[%02X] ", b)
		} else {
			s += fmt.Sprintf(" %02X  ", b)
		}
	}
	return s
}

func (m model) View() string {
	snap := Capture(m.cpu, m.bus)

	var pages []string
	base := m.cpu.PC &^ 0x000F
	for i := -2; i <= 2; i++ {
		pages = append(pages, m.memoryPage(uint16(int32(base)+int32(i*16))))
	}

	status := snap.registerLine()
	if m.err != nil {
		status += "\n\nerror: " + m.err.Error()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(pages, "\n"), "   "+status),
		"",
		"space/j: step   q: quit",
	)
}
