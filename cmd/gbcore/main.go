// Command gbcore inspects and runs Game Boy cartridges against the
// emulator core (§6).
package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"gbcore/boot"
	"gbcore/cart"
	"gbcore/debug"
	"gbcore/loop"
	"gbcore/mem"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gbcore",
		Short: "Handheld console core — decode cartridges and run the CPU/memory/display core",
	}

	var bootPath string
	var debugUI bool
	var crashPath string

	infoCmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Decode and print a cartridge header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			c := cart.New(data)
			fmt.Println(c)
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run <path>",
		Short: "Run a cartridge against the CPU/memory/display core",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCartridge(args[0], bootPath, debugUI, crashPath)
		},
	}
	runCmd.Flags().StringVar(&bootPath, "boot", "", "path to a 256-byte boot ROM image (omit to use boot.gb in the working directory if present, else synthesize one)")
	runCmd.Flags().BoolVar(&debugUI, "debug", false, "open the interactive inspector instead of a headless run")
	runCmd.Flags().StringVar(&crashPath, "crash-out", "crash.txt", "where to write the exit/crash dump")

	rootCmd.AddCommand(infoCmd, runCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCartridge(path, bootPath string, debugUI bool, crashPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c := cart.New(data)
	if !c.ChecksumValid() {
		fmt.Fprintf(os.Stderr, "warning: header checksum mismatch for %q\n", c.Title)
	}

	img, err := loadBoot(bootPath)
	if err != nil {
		return err
	}

	bus := mem.NewBus(c.ROM, img)
	bus.SerialOut = os.Stdout

	sess := loop.NewSession(bus)

	crashFile, err := os.Create(crashPath)
	if err != nil {
		return err
	}
	defer crashFile.Close()
	sess.CrashWriter = crashFile

	if debugUI {
		return runInspector(sess)
	}
	err = sess.Run(newHeadlessSurface())
	if errors.Is(err, loop.ErrHostQuit) {
		return nil // a host quit is a clean exit
	}
	return err
}

// loadBoot returns the patched real boot image at bootPath. If bootPath is
// empty it uses boot.gb in the working directory when that file exists, and
// a synthesized stub otherwise.
func loadBoot(bootPath string) (*boot.Image, error) {
	if bootPath == "" {
		if _, err := os.Stat("boot.gb"); err != nil {
			return boot.Stub(), nil
		}
		bootPath = "boot.gb"
	}
	raw, err := os.ReadFile(bootPath)
	if err != nil {
		return nil, err
	}
	return boot.FromBytes(raw)
}

func runInspector(sess *loop.Session) error {
	_, err := tea.NewProgram(debug.NewInspector(sess.Cpu, sess.Bus)).Run()
	return err
}
