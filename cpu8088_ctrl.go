// cpu8088_ctrl.go - control-flow instruction handlers
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// Jcc/LOOP/JCXZ are decoded with their branch displacement already
// sign-extended into d.Src.Value; "taken" is reported back to the
// step loop through CPU.branchTaken so it can add the cycle premium
// it can add the premium (+12 Jcc, LOOP base 5 -> 17 when taken).

package main

// jccCondition evaluates one of the sixteen condition codes 8086-family
// Jcc opcodes (0x70-0x7F) encode in their low nibble.
func jccCondition(c *CPU, cc byte) bool {
	switch cc & 0x0F {
	case 0x0: // JO
		return c.OF()
	case 0x1: // JNO
		return !c.OF()
	case 0x2: // JB/JC
		return c.CF()
	case 0x3: // JAE/JNC
		return !c.CF()
	case 0x4: // JE/JZ
		return c.ZF()
	case 0x5: // JNE/JNZ
		return !c.ZF()
	case 0x6: // JBE
		return c.CF() || c.ZF()
	case 0x7: // JA
		return !c.CF() && !c.ZF()
	case 0x8: // JS
		return c.SF()
	case 0x9: // JNS
		return !c.SF()
	case 0xA: // JP/JPE
		return c.PF()
	case 0xB: // JNP/JPO
		return !c.PF()
	case 0xC: // JL
		return c.SF() != c.OF()
	case 0xD: // JGE
		return c.SF() == c.OF()
	case 0xE: // JLE
		return c.ZF() || (c.SF() != c.OF())
	case 0xF: // JG
		return !c.ZF() && (c.SF() == c.OF())
	}
	return false
}

func hJcc(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if jccCondition(c, d.Opcode) {
		c.SetIP(c.IP() + d.Src.Value)
		c.branchTaken = true
	}
}

func hJMPSHORT(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.SetIP(c.IP() + d.Src.Value)
}

func hJMPNEAR(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.SetIP(c.IP() + d.Src.Value)
}

func hJMPFAR(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.SetSeg(SegCS, d.Dst.Value)
	c.SetIP(d.Src.Value)
}

func hCALLNEAR(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.Push16(c.IP())
	c.SetIP(c.IP() + d.Src.Value)
}

func hCALLFAR(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.Push16(c.CS())
	c.Push16(c.IP())
	c.SetSeg(SegCS, d.Dst.Value)
	c.SetIP(d.Src.Value)
}

func hRETNEAR(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	ip := c.Pop16()
	if d.Src.Kind == OpImm16 {
		c.SetSP(c.SP() + d.Src.Value)
	}
	c.SetIP(ip)
}

func hRETFAR(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	ip := c.Pop16()
	cs := c.Pop16()
	if d.Src.Kind == OpImm16 {
		c.SetSP(c.SP() + d.Src.Value)
	}
	c.SetIP(ip)
	c.SetSeg(SegCS, cs)
}

func hINT3(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.deliverInterrupt(mem, 3)
}

func hINT(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.deliverInterrupt(mem, byte(d.Src.Value))
}

func hINTO(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if c.OF() {
		c.deliverInterrupt(mem, 4)
		c.instrCycles += 49 // 4 base + 49 = the full 53-cycle trap path
	}
}

func hIRET(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	ip := c.Pop16()
	cs := c.Pop16()
	flags := c.Pop16()
	c.SetIP(ip)
	c.SetSeg(SegCS, cs)
	c.SetFlags(flags)
}

func hLOOP(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	cx := c.CX() - 1
	c.SetReg16(RegCX, cx)
	if cx != 0 {
		c.SetIP(c.IP() + d.Src.Value)
		c.branchTaken = true
	}
}

func hLOOPE(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	cx := c.CX() - 1
	c.SetReg16(RegCX, cx)
	if cx != 0 && c.ZF() {
		c.SetIP(c.IP() + d.Src.Value)
		c.branchTaken = true
	}
}

func hLOOPNE(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	cx := c.CX() - 1
	c.SetReg16(RegCX, cx)
	if cx != 0 && !c.ZF() {
		c.SetIP(c.IP() + d.Src.Value)
		c.branchTaken = true
	}
}

func hJCXZ(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if c.CX() == 0 {
		c.SetIP(c.IP() + d.Src.Value)
		c.branchTaken = true
	}
}
