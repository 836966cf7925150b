// cpu8088_move.go - data transfer instruction handlers
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

func hMOV(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if widthOf(d) {
		writeOperand16(c, mem, d.Dst, readOperand16(c, mem, d.Src))
		return
	}
	writeOperand8(c, mem, d.Dst, readOperand8(c, mem, d.Src))
}

func hXCHG(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if widthOf(d) {
		a, b := readOperand16(c, mem, d.Dst), readOperand16(c, mem, d.Src)
		writeOperand16(c, mem, d.Dst, b)
		writeOperand16(c, mem, d.Src, a)
		return
	}
	a, b := readOperand8(c, mem, d.Dst), readOperand8(c, mem, d.Src)
	writeOperand8(c, mem, d.Dst, b)
	writeOperand8(c, mem, d.Src, a)
}

// hLEA loads the effective address of Src (which must be a memory
// operand) into Dst without touching memory.
func hLEA(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	var off uint16
	if d.Src.Kind == OpDirect {
		off = d.Src.Disp
	} else {
		off = baseIndexOffset(c, d.Src)
	}
	writeOperand16(c, mem, d.Dst, off)
}

// hLES/hLDS load a 4-byte far pointer from memory: offset into Dst,
// segment into ES/DS.
func hLES(c *CPU, mem *MemoryBus, d *DecodedInstruction) { hLxS(c, mem, d, SegES) }
func hLDS(c *CPU, mem *MemoryBus, d *DecodedInstruction) { hLxS(c, mem, d, SegDS) }

func hLxS(c *CPU, mem *MemoryBus, d *DecodedInstruction, seg int) {
	addr := eaLinear(c, d.Src)
	off := mem.ReadWord(addr)
	segVal := mem.ReadWord((addr + 2) & linearAddressMask)
	writeOperand16(c, mem, d.Dst, off)
	c.SetSeg(seg, segVal)
}

func hNOP(c *CPU, mem *MemoryBus, d *DecodedInstruction) {}

func hCBW(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	c.SetReg16(RegAX, uint16(int16(int8(c.Reg8(RegAX)))))
}

func hCWD(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	if int16(c.AX()) < 0 {
		c.SetReg16(RegDX, 0xFFFF)
	} else {
		c.SetReg16(RegDX, 0)
	}
}

func hXLAT(c *CPU, mem *MemoryBus, d *DecodedInstruction) {
	seg := c.EffectiveSegment(SegDS)
	addr := Linear(seg, c.BX()+uint16(c.Reg8(RegAX)))
	c.SetReg8(RegAX, mem.Read(addr))
}
