// debugmon.go - interactive debug console for a running machine
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// A raw-mode, non-blocking stdin loop driving a host-side REPL over
// the CPU/bus directly. Single keystrokes drive step/run;
// a ':'-prefixed line names a typed command (regs, mem, break). This
// is never wired to the guest as a peripheral - it just watches and
// steps the same *Machine* the host window renders.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// DebugMonitor drives a Machine from the console: 's' single-steps,
// space toggles free-run, 'q' quits, and ':' begins a typed command
// line (regs / mem <addr> <len> / break <addr> / continue).
type DebugMonitor struct {
	m       *Machine
	out     io.Writer
	running bool
	breakAt map[uint32]bool

	inCmd   bool
	lineBuf []byte
}

func NewDebugMonitor(m *Machine) *DebugMonitor {
	return &DebugMonitor{m: m, out: os.Stdout, breakAt: make(map[uint32]bool)}
}

// SetOutput redirects console output; used by tests to capture what
// would otherwise go to stdout.
func (d *DebugMonitor) SetOutput(w io.Writer) { d.out = w }

// Run puts stdin into raw, non-blocking mode and drives the console
// until the user quits or stdin closes. It never returns an error for
// an ordinary quit; only a failure to enter raw mode is reported.
func (d *DebugMonitor) Run() error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("debugmon: raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)
	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("debugmon: nonblocking stdin: %w", err)
	}
	defer syscall.SetNonblock(fd, false)

	d.printRegs()
	buf := make([]byte, 1)
	for {
		n, rerr := syscall.Read(fd, buf)
		if n > 0 {
			if d.handleKey(buf[0]) {
				return nil
			}
		} else if rerr != nil && rerr != syscall.EAGAIN && rerr != syscall.EWOULDBLOCK {
			return nil
		}
		if d.running {
			d.m.CPU.Step()
			if d.atBreakOrHalt() {
				d.running = false
				d.printRegs()
			}
		}
	}
}

// atBreakOrHalt reports (and announces) whether the machine just
// stopped on its own: a deliberate halt, or a breakpoint address.
func (d *DebugMonitor) atBreakOrHalt() bool {
	if !d.m.CPU.Running() {
		if fault := d.m.CPU.LastFault(); fault != nil {
			d.println(fault.Error())
		} else {
			d.println("stopped")
		}
		return true
	}
	if d.m.CPU.Halted() && !d.m.CPU.IF() {
		d.println("halted")
		return true
	}
	if d.breakAt[Linear(d.m.CPU.CS(), d.m.CPU.IP())] {
		d.println("breakpoint hit")
		return true
	}
	return false
}

// handleKey processes one raw input byte, returning true if the
// console should stop running.
func (d *DebugMonitor) handleKey(b byte) bool {
	if d.inCmd {
		switch b {
		case '\r', '\n':
			line := string(d.lineBuf)
			d.lineBuf = d.lineBuf[:0]
			d.inCmd = false
			d.dispatch(strings.TrimSpace(line))
		case 0x7F, 0x08: // DEL / backspace
			if len(d.lineBuf) > 0 {
				d.lineBuf = d.lineBuf[:len(d.lineBuf)-1]
			}
		default:
			d.lineBuf = append(d.lineBuf, b)
		}
		return false
	}
	switch b {
	case 'q', 0x03: // q or Ctrl-C
		return true
	case 's':
		d.running = false
		d.m.CPU.Step()
		d.printRegs()
	case ' ':
		d.running = !d.running
		if d.running {
			d.println("running")
		} else {
			d.println("stopped")
		}
	case ':':
		d.inCmd = true
		d.lineBuf = d.lineBuf[:0]
	}
	return false
}

func (d *DebugMonitor) println(s string) {
	fmt.Fprintf(d.out, "%s\r\n", s)
}

func (d *DebugMonitor) printRegs() {
	d.println(d.m.CPU.String())
}

// dispatch executes one typed command line.
func (d *DebugMonitor) dispatch(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	switch fields[0] {
	case "regs":
		d.printRegs()
	case "step":
		d.m.CPU.Step()
		d.printRegs()
	case "continue":
		d.running = true
		d.println("running")
	case "mem":
		d.cmdMem(fields[1:])
	case "break":
		d.cmdBreak(fields[1:])
	default:
		d.println("unknown command: " + fields[0])
	}
}

func (d *DebugMonitor) cmdMem(args []string) {
	addr, length, ok := parseMemArgs(args)
	if !ok {
		d.println("usage: mem <addr> <len>")
		return
	}
	var sb strings.Builder
	for i := 0; i < length; i++ {
		if i%16 == 0 {
			fmt.Fprintf(&sb, "\r\n%05X: ", (addr+uint32(i))&linearAddressMask)
		}
		fmt.Fprintf(&sb, "%02X ", d.m.Bus.Read(addr+uint32(i)))
	}
	d.println(sb.String())
}

func parseMemArgs(args []string) (addr uint32, length int, ok bool) {
	if len(args) != 2 {
		return 0, 0, false
	}
	a, err1 := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	n, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || n <= 0 {
		return 0, 0, false
	}
	return uint32(a) & linearAddressMask, n, true
}

func (d *DebugMonitor) cmdBreak(args []string) {
	addr, ok := parseBreakArg(args)
	if !ok {
		d.println("usage: break <addr>")
		return
	}
	d.breakAt[addr] = true
	d.println(fmt.Sprintf("breakpoint set at %05X", addr))
}

func parseBreakArg(args []string) (addr uint32, ok bool) {
	if len(args) != 1 {
		return 0, false
	}
	a, err := strconv.ParseUint(strings.TrimPrefix(args[0], "0x"), 16, 32)
	if err != nil {
		return 0, false
	}
	return uint32(a) & linearAddressMask, true
}

