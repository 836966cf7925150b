// harness.go - machine assembly and ROM/program loading
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// Every test and main.go wires up the same five pieces by hand: a decode
// cache, a bus, the three documented peripherals, and a CPU. Machine
// collects that wiring in one place. There is no guest-visible file
// I/O surface - ROM and program images are loaded once, from the host
// side, before the core ever runs.

package main

import (
	"fmt"
	"os"
)

const defaultDecodeCacheCapacity = 4096

// Machine bundles a CPU with its bus and peripherals for callers that
// don't want to repeat the wiring themselves.
type Machine struct {
	CPU *CPU
	Bus *MemoryBus
	PIC *PIC
	PPI *PPI
	PIT *PIT
}

// NewMachine assembles a fresh machine: decode cache, bus, PIC on
// 0x20-0x21, PPI on 0x60-0x62 (with the given scancode queue depth,
// 0 for the default), PIT on 0x40-0x43, and a CPU wired to all three.
func NewMachine(scancodeQueueDepth int) *Machine {
	cache := NewDecodeCache(defaultDecodeCacheCapacity)
	bus := NewMemoryBus(cache)
	pic := NewPIC()
	ppi := NewPPI(scancodeQueueDepth)
	pit := NewPIT()
	bus.RegisterDevice(pic)
	bus.RegisterDevice(ppi)
	bus.RegisterDevice(pit)
	cpu := NewCPU(bus, cache, pic)
	return &Machine{CPU: cpu, Bus: bus, PIC: pic, PPI: ppi, PIT: pit}
}

// Reset restores every component to power-on state without rebuilding
// the wiring between them.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Bus.Reset()
	m.PIC.Reset()
	m.PPI.Reset()
	m.PIT.Reset()
}

// LoadProgram installs a flat binary at cs:offset, drops every cached
// decode wholesale, and points CS:IP at the entry. The per-range
// invalidation LoadProgramAt already does would be enough for
// correctness; clearing everything keeps a reloaded program from
// inheriting stale hit statistics.
func (m *Machine) LoadProgram(cs, offset uint16, data []byte) {
	m.Bus.LoadProgramAt(cs, offset, data)
	m.CPU.cache.Clear()
	m.CPU.SetSeg(SegCS, cs)
	m.CPU.SetIP(offset)
}

// LoadROMFile reads path from the host filesystem and installs it as
// the machine's top-of-memory BIOS ROM image.
func LoadROMFile(bus *MemoryBus, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}
	return bus.LoadROM(data)
}

// LoadProgramFile reads path from the host filesystem and writes it into
// RAM at cs:offset, for booting a flat binary directly instead of
// through a ROM reset vector.
func LoadProgramFile(bus *MemoryBus, cs, offset uint16, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	bus.LoadProgramAt(cs, offset, data)
	return nil
}

// RunUntilHalt steps the CPU until it halts with interrupts disabled (a
// deliberate program shutdown, as opposed to an idle wait-for-IRQ halt)
// or maxCycles elapses, returning the number of cycles actually
// consumed. maxCycles of 0 means run forever.
func (m *Machine) RunUntilHalt(maxCycles uint64) uint64 {
	var total uint64
	for maxCycles == 0 || total < maxCycles {
		total += uint64(m.CPU.Step())
		if m.CPU.Halted() && !m.CPU.IF() {
			break
		}
	}
	return total
}
