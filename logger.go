// logger.go - diagnostic logging seam
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// No external logging library is wired in; go.mod carries no logging
// dependency for this layer, so this stays stdlib (documented in
// DESIGN.md). Logger is a small interface so tests can swap in a
// buffering implementation instead of asserting against stderr text.

package main

import (
	"fmt"
	"log"
	"os"
)

// Logger is the diagnostic seam the CPU core and peripherals log
// through. Debugf is for step-trace / decode-cache chatter that's
// usually silenced; Errorf is for conditions the core treats as fatal
// to the running program (invalid opcode, divide fault).
type Logger interface {
	Debugf(format string, args ...any)
	Errorf(format string, args ...any)
}

// stdLogger writes through the standard library's log package with a
// fixed prefix, gating Debugf behind a verbosity flag.
type stdLogger struct {
	verbose bool
	l       *log.Logger
}

func newStdLogger(verbose bool) *stdLogger {
	return &stdLogger{verbose: verbose, l: log.New(os.Stderr, "go8088: ", log.LstdFlags)}
}

func (s *stdLogger) Debugf(format string, args ...any) {
	if !s.verbose {
		return
	}
	s.l.Output(2, fmt.Sprintf(format, args...))
}

func (s *stdLogger) Errorf(format string, args ...any) {
	s.l.Output(2, fmt.Sprintf(format, args...))
}

// defaultLogger is used by CPU values constructed without an explicit
// logger (NewCPU); main.go replaces it via CPU.SetLogger once -gdb /
// -verbose flags are parsed.
var defaultLogger Logger = newStdLogger(false)

// nullLogger discards everything; used by tests that don't want
// stderr noise from expected-invalid-opcode or expected-divide-fault
// paths.
type nullLogger struct{}

func (nullLogger) Debugf(string, ...any) {}
func (nullLogger) Errorf(string, ...any) {}

// SetLogger swaps the CPU's diagnostic sink.
func (c *CPU) SetLogger(l Logger) { c.log = l }
