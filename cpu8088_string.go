// cpu8088_string.go - string primitive handlers
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// Each handler does exactly one element, then inspects c.repPrefix:
// MOVS/STOS/LODS continue on CX!=0 (REP); CMPS/SCAS continue on
// CX!=0 *and* ZF matching the prefix's sense (REPE vs REPNE). The
// step loop - not these handlers - owns winding IP back to repeatIP
// and the overall REP cycle accounting.

package main

func strStep(c *CPU) uint16 {
	if c.DF() {
		return 0xFFFF // -1
	}
	return 1
}

// repSkip reports whether an active REP-family prefix already has
// CX==0 on entry, in which case the string op performs zero iterations
// entirely: IP has already moved past the prefix+opcode, no element is
// fetched, no SI/DI update happens, and stringRepeat never runs.
func repSkip(c *CPU) bool {
	return c.repPrefix != RepNone && c.CX() == 0
}

func hMOVSB(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	seg := c.EffectiveSegment(SegDS)
	v := mem.Read(Linear(seg, c.SI()))
	mem.Write(Linear(c.ES(), c.DI()), v)
	step := strStep(c)
	c.SetReg16(RegSI, c.SI()+step)
	c.SetReg16(RegDI, c.DI()+step)
	stringRepeat(c, false)
}

func hMOVSW(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	seg := c.EffectiveSegment(SegDS)
	v := mem.ReadWord(Linear(seg, c.SI()))
	mem.WriteWord(Linear(c.ES(), c.DI()), v)
	step := strStep(c) * 2
	c.SetReg16(RegSI, c.SI()+step)
	c.SetReg16(RegDI, c.DI()+step)
	stringRepeat(c, false)
}

func hSTOSB(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	mem.Write(Linear(c.ES(), c.DI()), c.Reg8(RegAX))
	c.SetReg16(RegDI, c.DI()+strStep(c))
	stringRepeat(c, false)
}

func hSTOSW(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	mem.WriteWord(Linear(c.ES(), c.DI()), c.AX())
	c.SetReg16(RegDI, c.DI()+strStep(c)*2)
	stringRepeat(c, false)
}

func hLODSB(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	seg := c.EffectiveSegment(SegDS)
	c.SetReg8(RegAX, mem.Read(Linear(seg, c.SI())))
	c.SetReg16(RegSI, c.SI()+strStep(c))
	stringRepeat(c, false)
}

func hLODSW(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	seg := c.EffectiveSegment(SegDS)
	c.SetReg16(RegAX, mem.ReadWord(Linear(seg, c.SI())))
	c.SetReg16(RegSI, c.SI()+strStep(c)*2)
	stringRepeat(c, false)
}

func hCMPSB(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	seg := c.EffectiveSegment(SegDS)
	a := mem.Read(Linear(seg, c.SI()))
	b := mem.Read(Linear(c.ES(), c.DI()))
	c.flagsSub8(a, b)
	step := strStep(c)
	c.SetReg16(RegSI, c.SI()+step)
	c.SetReg16(RegDI, c.DI()+step)
	stringRepeat(c, true)
}

func hCMPSW(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	seg := c.EffectiveSegment(SegDS)
	a := mem.ReadWord(Linear(seg, c.SI()))
	b := mem.ReadWord(Linear(c.ES(), c.DI()))
	c.flagsSub16(a, b)
	step := strStep(c) * 2
	c.SetReg16(RegSI, c.SI()+step)
	c.SetReg16(RegDI, c.DI()+step)
	stringRepeat(c, true)
}

func hSCASB(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	v := mem.Read(Linear(c.ES(), c.DI()))
	c.flagsSub8(c.Reg8(RegAX), v)
	c.SetReg16(RegDI, c.DI()+strStep(c))
	stringRepeat(c, true)
}

func hSCASW(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if repSkip(c) {
		return
	}
	v := mem.ReadWord(Linear(c.ES(), c.DI()))
	c.flagsSub16(c.AX(), v)
	c.SetReg16(RegDI, c.DI()+strStep(c)*2)
	stringRepeat(c, true)
}

// stringRepeat implements the REP/REPE/REPNE continuation rule for the
// element just executed. compareForm selects the CMPS/SCAS variant,
// which additionally requires ZF to match the prefix's sense. Every
// element - REP-driven or not - costs its per-iteration cycle count:
// 9 for MOVS/STOS/LODS, 17 for the compare forms CMPS/SCAS.
func stringRepeat(c *CPU, compareForm bool) {
	if compareForm {
		c.instrCycles += 17
	} else {
		c.instrCycles += 9
	}
	if c.repPrefix == RepNone {
		return
	}
	cx := c.CX() - 1
	c.SetReg16(RegCX, cx)
	if cx == 0 {
		return
	}
	if compareForm {
		wantZF := c.repPrefix == RepRep // REPE continues while ZF=1
		if c.ZF() != wantZF {
			return
		}
	}
	c.SetIP(c.repeatIP)
	c.branchTaken = true
	c.repContinuing = true
}
