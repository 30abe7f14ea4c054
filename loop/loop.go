// Package loop implements the Frame Loop (§5): the cooperative,
// single-threaded cycle that drives the CPU Core, advances the Display
// Pass on a scanline cadence, and produces a crash dump on any exit path,
// normal or not. It does no 60 Hz pacing of its own: frames are produced
// as fast as the Core executes, and any pacing is up to the HostSurface.
// It is grounded on the reference implementation's run/dump functions.
package loop

import (
	"errors"
	"fmt"
	"io"

	"gbcore/cpu"
	"gbcore/debug"
	"gbcore/display"
	"gbcore/mem"
)

// ErrHostQuit is returned by Run when HostSurface.PollQuit reports the user
// asked to quit; it is not itself an error condition worth a crash dump
// with a nonzero-exit flavor, but Run still writes one for provenance, the
// same way the reference implementation's "Safe exit" dump did.
var ErrHostQuit = errors.New("loop: host requested quit")

// HostSurface is the presentation boundary the Frame Loop drives once per
// completed frame. Implementations own their own window/event system;
// nothing under this module touches a real display.
type HostSurface interface {
	// Blit presents a composited frame.
	Blit(f *display.Frame)
	// PollQuit reports whether the host wants the session to end. Called
	// once per frame boundary.
	PollQuit() bool
	// Close releases the surface. Always called exactly once, via defer,
	// regardless of how Run exits.
	Close() error
}

// Session bundles the Core and Bus driving one emulator run.
type Session struct {
	Cpu *cpu.Cpu
	Bus *mem.Bus

	// CrashWriter receives the crash dump on every exit path. Defaults to
	// nil, in which case Run skips writing one.
	CrashWriter io.Writer
}

// NewSession constructs a Session with a fresh Core wired to bus.
func NewSession(bus *mem.Bus) *Session {
	return &Session{Cpu: cpu.New(bus), Bus: bus}
}

// Run drives the Session against surface until a quit signal, a fatal
// opcode, or a panic from the emulated program ends it. Every exit path
// releases surface and writes a crash dump first (§5): a clean quit is
// dumped with reason "Safe exit", matching the reference implementation's
// unconditional dump-on-exit behavior.
func (s *Session) Run(surface HostSurface) (err error) {
	defer surface.Close()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("loop: %v", r)
		}
		if s.CrashWriter != nil {
			// a host-requested quit is not itself a fault; the reference
			// implementation's exit dump always reads "Safe exit" unless
			// an exception actually interrupted the loop.
			reason := "Safe exit"
			if err != nil && !errors.Is(err, ErrHostQuit) {
				reason = err.Error()
			}
			// the crash dump is best-effort: a write failure here must
			// not mask the original error.
			_ = debug.WriteCrashDump(s.CrashWriter, reason, debug.Capture(s.Cpu, s.Bus))
		}
	}()

	var scanlineAcc uint32

	for {
		var cycles uint32
		if s.Cpu.Halt || s.Cpu.Stop {
			cycles = 4
		} else {
			cycles, err = s.Cpu.Tick()
			if err != nil {
				return err
			}
		}

		scanlineAcc += cycles
		for scanlineAcc >= display.CyclesPerScanline {
			scanlineAcc -= display.CyclesPerScanline
			if display.AdvanceScanline(s.Bus) {
				frame := display.Render(s.Bus)
				surface.Blit(frame)
				if surface.PollQuit() {
					return ErrHostQuit
				}
			}
		}
	}
}
