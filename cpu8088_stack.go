// cpu8088_stack.go - stack and remaining group-opcode handlers
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

// hPUSH handles PUSH reg16. PUSH SP is the one documented 8088 quirk:
// the operand must be read *after* Push16's decrement, since the value
// stored is the new SP, not the value SP held before the push.
func hPUSH(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if d.Dst.Kind == OpReg16 && d.Dst.RMIndex() == RegSP {
		c.regs[RegSP] -= 2
		c.bus.WriteWord(Linear(c.SS(), c.SP()), c.SP())
		return
	}
	c.Push16(readOperand16(c, mem, d.Dst))
}

func hPOP(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	writeOperand16(c, mem, d.Dst, c.Pop16())
}

func hPUSHSEG(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.Push16(c.Seg(int(d.Dst.Value)))
}

func hPOPSEG(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.SetSeg(int(d.Dst.Value), c.Pop16())
}

func hPUSHF(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.Push16(c.GetFlags())
}

func hPOPF(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.SetFlags(c.Pop16())
}

func hSAHF(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	ah := byte(c.AX() >> 8)
	v := (c.GetFlags() &^ 0x00FF) | uint16(ah)
	c.SetFlags(v)
}

func hLAHF(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.SetReg8(RegAX+4, byte(c.GetFlags()))
}

// hIncDecGroup8 handles opcode 0xFE: reg 0 = INC r/m8, reg 1 = DEC r/m8.
func hIncDecGroup8(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	v := readOperand8(c, mem, d.Dst)
	if d.Dst.GroupReg()&7 == 0 {
		writeOperand8(c, mem, d.Dst, c.flagsInc8(v))
	} else {
		writeOperand8(c, mem, d.Dst, c.flagsDec8(v))
	}
}

// hGroupFF handles opcode 0xFF: INC/DEC r/m16, CALL/JMP indirect
// (near and far), and PUSH r/m16.
func hGroupFF(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	switch d.Dst.GroupReg() & 7 {
	case 0:
		writeOperand16(c, mem, d.Dst, c.flagsInc16(readOperand16(c, mem, d.Dst)))
	case 1:
		writeOperand16(c, mem, d.Dst, c.flagsDec16(readOperand16(c, mem, d.Dst)))
	case 2: // CALL r/m16 (near indirect)
		target := readOperand16(c, mem, d.Dst)
		c.Push16(c.IP())
		c.SetIP(target)
	case 3: // CALL m16:16 (far indirect)
		addr := eaLinear(c, d.Dst)
		off := mem.ReadWord(addr)
		seg := mem.ReadWord((addr + 2) & linearAddressMask)
		c.Push16(c.CS())
		c.Push16(c.IP())
		c.SetSeg(SegCS, seg)
		c.SetIP(off)
	case 4: // JMP r/m16 (near indirect)
		c.SetIP(readOperand16(c, mem, d.Dst))
	case 5: // JMP m16:16 (far indirect)
		addr := eaLinear(c, d.Dst)
		off := mem.ReadWord(addr)
		seg := mem.ReadWord((addr + 2) & linearAddressMask)
		c.SetSeg(SegCS, seg)
		c.SetIP(off)
	case 6: // PUSH r/m16 (shares the PUSH SP quirk)
		hPUSH(c, mem, d)
	default:
		handlerInvalidOpcode(c, mem, d)
	}
}
