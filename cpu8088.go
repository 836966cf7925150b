// cpu8088.go - 8088 CPU core: registers, reset, segment/linear helpers
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// The register file follows the 8088 model exactly: eight 16-bit
// general-purpose slots (AX, CX, DX, BX, SP, BP, SI, DI), four 16-bit
// segment registers (ES, CS, SS, DS), a 16-bit IP, and a 16-bit FLAGS.
// Byte registers AL/CL/DL/BL/AH/CH/DH/BH are views over the low/high
// bytes of the first four GPR slots, not separate storage.

package main

import "fmt"

// General register slot indices.
const (
	RegAX = 0
	RegCX = 1
	RegDX = 2
	RegBX = 3
	RegSP = 4
	RegBP = 5
	RegSI = 6
	RegDI = 7
)

// Segment register indices.
const (
	SegES = 0
	SegCS = 1
	SegSS = 2
	SegDS = 3
)

// FLAGS bit positions.
const (
	FlagCF = 1 << 0
	flagB1 = 1 << 1 // always set, reserved
	FlagPF = 1 << 2
	FlagAF = 1 << 4
	FlagZF = 1 << 6
	FlagSF = 1 << 7
	FlagTF = 1 << 8
	FlagIF = 1 << 9
	FlagDF = 1 << 10
	FlagOF = 1 << 11
)

// PrefixRep identifies the active REP-family prefix for the in-flight
// instruction.
type PrefixRep uint8

const (
	RepNone PrefixRep = iota
	RepRep            // F3 (REP / REPE)
	RepRepNe          // F2 (REPNE)
)

// noSegOverride is the sentinel meaning "no segment-override prefix is
// active"; segment indices are always 0-3 so -1 is unambiguous.
const noSegOverride = -1

// CPU holds the full architectural and micro-architectural state of one
// 8088 core.
type CPU struct {
	regs [8]uint16 // AX, CX, DX, BX, SP, BP, SI, DI
	segs [4]uint16 // ES, CS, SS, DS
	ip   uint16
	flags uint16

	lazy lazyFlags

	// Prefix state for the instruction currently being decoded/executed.
	segOverride int8 // noSegOverride, or SegES/SegCS/SegSS/SegDS
	repPrefix   PrefixRep
	repeatIP    uint16 // IP of the first prefix byte (or the opcode, if none)

	halted       bool
	stiShadow    bool // one-instruction delay after IF 0->1 via STI
	running      bool
	branchTaken  bool // set by a control-flow handler that took its branch

	// repContinuing is set by a string handler when it is about to loop
	// back to repeatIP for another REP iteration. A
	// REP-iterated string instruction is one logical instruction for
	// peripheral-tick and interrupt-sampling purposes: the step loop
	// reads this at the top of the next Step() to skip interrupt
	// sampling, and at the bottom of the current Step() to defer the
	// peripheral tick until the whole sequence finishes.
	repContinuing bool
	pendingTickCycles int // cycles accumulated across a deferred REP sequence

	totalCycles   uint64
	instrCycles   uint16

	bus   *MemoryBus
	cache *DecodeCache
	pic   *PIC

	log Logger

	// lastFault records a fatal abort (invalid opcode or divide error,
	// nil unless Running() has gone false because of one.
	lastFault error
}

// LastFault returns the fatal-abort error that stopped the core, or nil
// if it is still running or was stopped by other means (e.g. HLT with
// IF=0).
func (c *CPU) LastFault() error { return c.lastFault }

func NewCPU(bus *MemoryBus, cache *DecodeCache, pic *PIC) *CPU {
	c := &CPU{bus: bus, cache: cache, pic: pic, log: defaultLogger}
	c.Reset()
	return c
}

// Reset puts the CPU into its documented power-on state: CS:IP =
// F000:FFF0, FLAGS = 0x0002 (reserved bit 1 only).
func (c *CPU) Reset() {
	c.regs = [8]uint16{}
	c.segs = [4]uint16{}
	c.segs[SegCS] = 0xF000
	c.ip = 0xFFF0
	c.flags = flagB1
	c.lazy = lazyFlags{}
	c.segOverride = noSegOverride
	c.repPrefix = RepNone
	c.halted = false
	c.stiShadow = false
	c.running = true
	c.totalCycles = 0
	c.instrCycles = 0
	c.repContinuing = false
	c.pendingTickCycles = 0
	c.lastFault = nil
}

func (c *CPU) Running() bool   { return c.running }
func (c *CPU) Halted() bool    { return c.halted }
func (c *CPU) TotalCycles() uint64 { return c.totalCycles }

// -----------------------------------------------------------------------
// Register access
// -----------------------------------------------------------------------

func (c *CPU) Reg16(i int) uint16    { return c.regs[i&7] }
func (c *CPU) SetReg16(i int, v uint16) { c.regs[i&7] = v }

// Reg8 returns an 8-bit register by the 0..7 ModR/M encoding (0-3 low
// bytes of AX/CX/DX/BX, 4-7 high bytes of the same four slots).
func (c *CPU) Reg8(i int) byte {
	i &= 7
	if i < 4 {
		return byte(c.regs[i])
	}
	return byte(c.regs[i-4] >> 8)
}

func (c *CPU) SetReg8(i int, v byte) {
	i &= 7
	if i < 4 {
		c.regs[i] = (c.regs[i] &^ 0xFF) | uint16(v)
	} else {
		c.regs[i-4] = (c.regs[i-4] &^ 0xFF00) | uint16(v)<<8
	}
}

func (c *CPU) Seg(i int) uint16       { return c.segs[i&3] }
func (c *CPU) SetSeg(i int, v uint16) { c.segs[i&3] = v }

func (c *CPU) AX() uint16 { return c.regs[RegAX] }
func (c *CPU) CX() uint16 { return c.regs[RegCX] }
func (c *CPU) DX() uint16 { return c.regs[RegDX] }
func (c *CPU) BX() uint16 { return c.regs[RegBX] }
func (c *CPU) SP() uint16 { return c.regs[RegSP] }
func (c *CPU) BP() uint16 { return c.regs[RegBP] }
func (c *CPU) SI() uint16 { return c.regs[RegSI] }
func (c *CPU) DI() uint16 { return c.regs[RegDI] }
func (c *CPU) IP() uint16 { return c.ip }
func (c *CPU) CS() uint16 { return c.segs[SegCS] }
func (c *CPU) DS() uint16 { return c.segs[SegDS] }
func (c *CPU) SS() uint16 { return c.segs[SegSS] }
func (c *CPU) ES() uint16 { return c.segs[SegES] }

func (c *CPU) SetIP(v uint16) { c.ip = v }
func (c *CPU) SetSP(v uint16) { c.regs[RegSP] = v }

// -----------------------------------------------------------------------
// Linear addressing
// -----------------------------------------------------------------------

// Linear returns (seg<<4 + off) masked to 20 bits.
func Linear(seg, off uint16) uint32 {
	return (uint32(seg)<<4 + uint32(off)) & linearAddressMask
}

// EffectiveSegment resolves which segment register a memory operand
// reads through: a live override prefix wins, otherwise the operand's
// own documented default (DS, or SS for BP-relative forms).
func (c *CPU) EffectiveSegment(defaultSeg int8) uint16 {
	if c.segOverride != noSegOverride {
		return c.segs[c.segOverride]
	}
	return c.segs[defaultSeg]
}

// -----------------------------------------------------------------------
// Stack helpers
// -----------------------------------------------------------------------

// Push16 decrements SP by 2 then writes - the new SP is what a
// subsequent PUSH SP instruction observes (the documented 8088 quirk).
func (c *CPU) Push16(v uint16) {
	c.regs[RegSP] -= 2
	c.bus.WriteWord(Linear(c.segs[SegSS], c.regs[RegSP]), v)
}

func (c *CPU) Pop16() uint16 {
	v := c.bus.ReadWord(Linear(c.segs[SegSS], c.regs[RegSP]))
	c.regs[RegSP] += 2
	return v
}

// -----------------------------------------------------------------------
// Interrupt delivery
// -----------------------------------------------------------------------

const ivtBase = 0 // real-mode interrupt vector table: 256 x 4-byte far pointers

// deliverInterrupt runs the documented INT sequence: push FLAGS, CS,
// IP, clear IF and TF, load CS:IP from the IVT entry for vector. The
// step loop's interrupt-sampling path and the INT/INT3/INTO handlers
// all funnel through here so the sequence is defined exactly once.
// Cycle cost is charged by the caller: the base-cycle table for the
// INT instructions, interruptDeliveryCycles for an external IRQ.
func (c *CPU) deliverInterrupt(mem *MemoryBus, vector byte) {
	c.Push16(c.GetFlags())
	c.Push16(c.CS())
	c.Push16(c.IP())
	c.SetFlag(FlagIF, false)
	c.SetFlag(FlagTF, false)
	entry := uint32(ivtBase) + uint32(vector)*4
	off := mem.ReadWord(entry)
	seg := mem.ReadWord(entry + 2)
	c.SetIP(off)
	c.SetSeg(SegCS, seg)
	c.halted = false
}

func (c *CPU) String() string {
	return fmt.Sprintf("AX=%04X CX=%04X DX=%04X BX=%04X SP=%04X BP=%04X SI=%04X DI=%04X CS=%04X DS=%04X ES=%04X SS=%04X IP=%04X FL=%04X",
		c.AX(), c.CX(), c.DX(), c.BX(), c.SP(), c.BP(), c.SI(), c.DI(),
		c.CS(), c.DS(), c.ES(), c.SS(), c.IP(), c.GetFlags())
}
