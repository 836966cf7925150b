// main.go - CLI entry point: load a ROM image and run the machine
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

import (
	"flag"
	"fmt"
	"os"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-headless] [-font path] [-verbose] <rom-file>\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is main's testable body: it never calls os.Exit, so main_test.go
// can exercise flag parsing and the -gdb rejection path directly.
func run(args []string) int {
	fs := flag.NewFlagSet("go8088", flag.ContinueOnError)
	fs.Usage = usage
	headless := fs.Bool("headless", false, "skip the display window, run the debug console only")
	gdbAddr := fs.String("gdb", "", "not implemented - accepted for CLI-surface compatibility only")
	fontPath := fs.String("font", "", "path to a 256x14 raw font ROM (blank glyphs if omitted)")
	verbose := fs.Bool("verbose", false, "enable debug-level core diagnostics")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *gdbAddr != "" {
		fmt.Fprintln(os.Stderr, "go8088: -gdb is not implemented")
		return 1
	}
	if fs.NArg() != 1 {
		usage()
		return 2
	}
	romPath := fs.Arg(0)

	m := NewMachine(0)
	m.CPU.SetLogger(newStdLogger(*verbose))
	if err := LoadROMFile(m.Bus, romPath); err != nil {
		fmt.Fprintf(os.Stderr, "go8088: %v\n", err)
		return 1
	}
	m.Reset()

	font, err := loadFont(*fontPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "go8088: %v\n", err)
		return 1
	}

	mon := NewDebugMonitor(m)
	if *headless {
		if err := mon.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "go8088: %v\n", err)
			return 1
		}
		return 0
	}

	win := NewHostWindow(m, font)
	go func() {
		_ = mon.Run()
	}()
	if err := win.Run("go8088"); err != nil {
		fmt.Fprintf(os.Stderr, "go8088: %v\n", err)
		return 1
	}
	return 0
}

// loadFont reads a 256x14 raw font ROM from path, or returns a blank
// (all-zero glyph) font of the right size if path is empty.
func loadFont(path string) ([]byte, error) {
	if path == "" {
		return make([]byte, mdaFontSize), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}
	if len(data) < mdaFontSize {
		return nil, fmt.Errorf("font ROM too small: need %d bytes, got %d", mdaFontSize, len(data))
	}
	return data, nil
}
