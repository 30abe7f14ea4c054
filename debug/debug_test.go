package debug

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gbcore/cpu"
	"gbcore/mem"
)

func TestWriteCrashDumpIncludesReasonAndRegisters(t *testing.T) {
	bus := mem.NewBus(make([]byte, 0x8000), nil)
	c := cpu.New(bus)

	var buf bytes.Buffer
	err := WriteCrashDump(&buf, "illegal opcode 0xD3", Capture(c, bus))
	assert.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, "illegal opcode 0xD3"))
	assert.True(t, strings.Contains(out, "PC=0100"))
	assert.True(t, strings.Contains(out, "SP=FFFE"))
}

func TestWriteCrashDumpIncludesMemory(t *testing.T) {
	bus := mem.NewBus(make([]byte, 0x8000), nil)
	bus.Write8(0xC000, 0xAB)
	c := cpu.New(bus)

	var buf bytes.Buffer
	err := WriteCrashDump(&buf, "Safe exit", Capture(c, bus))
	assert.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), "ab") || strings.Contains(buf.String(), "AB"))
}

func TestCaptureReflectsLastDecoded(t *testing.T) {
	bus := mem.NewBus(make([]byte, 0x8000), nil)
	bus.Write8(0x0100, 0x00) // NOP
	c := cpu.New(bus)
	_, err := c.Tick()
	assert.NoError(t, err)

	s := Capture(c, bus)
	assert.Equal(t, uint16(0x0100), s.LastPC)
	assert.Equal(t, "NOP", s.LastOp)
}
