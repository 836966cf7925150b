// decode_ops.go - per-opcode operand decode, wired to dispatch handlers
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later

package main

// aluHandlers indexes the eight two-operand arithmetic/logic handlers
// by the 3-bit field that both the 0x00-0x3D opcode block and the
// 0x80-0x83 immediate group use to select an ALU operation.
var aluHandlers = [8]OpHandler{hADD, hOR, hADC, hSBB, hAND, hSUB, hXOR, hCMP}

// decodeOne fills in d.Dst/d.Src/d.Handler for the instruction whose
// opcode byte has already been consumed (n points past it). Prefix
// bytes are never seen here - the step loop's pre-pass strips them.
func decodeOne(bus *MemoryBus, addr uint32, n *uint8, op byte, d *DecodedInstruction) {
	if op <= 0x3D && op&7 <= 5 {
		decodeALUBlock(bus, addr, n, op, d)
		return
	}

	switch op {
	case 0x06:
		d.Dst = Operand{Kind: OpSegReg, Value: uint16(SegES)}
		d.Handler = hPUSHSEG
	case 0x07:
		d.Dst = Operand{Kind: OpSegReg, Value: uint16(SegES)}
		d.Handler = hPOPSEG
	case 0x0E:
		d.Dst = Operand{Kind: OpSegReg, Value: uint16(SegCS)}
		d.Handler = hPUSHSEG
	case 0x16:
		d.Dst = Operand{Kind: OpSegReg, Value: uint16(SegSS)}
		d.Handler = hPUSHSEG
	case 0x17:
		d.Dst = Operand{Kind: OpSegReg, Value: uint16(SegSS)}
		d.Handler = hPOPSEG
	case 0x1E:
		d.Dst = Operand{Kind: OpSegReg, Value: uint16(SegDS)}
		d.Handler = hPUSHSEG
	case 0x1F:
		d.Dst = Operand{Kind: OpSegReg, Value: uint16(SegDS)}
		d.Handler = hPOPSEG
	case 0x27:
		d.Handler = hDAA
	case 0x2F:
		d.Handler = hDAS
	case 0x37:
		d.Handler = hAAA
	case 0x3F:
		d.Handler = hAAS

	case 0x84, 0x85:
		m := decodeModRM(bus, addr, n)
		wide := op == 0x85
		d.Dst, d.Src = m.rmOperand(wide), m.regOperand(wide)
		d.Handler = hTEST

	case 0x86, 0x87:
		m := decodeModRM(bus, addr, n)
		wide := op == 0x87
		d.Dst, d.Src = m.rmOperand(wide), m.regOperand(wide)
		d.Handler = hXCHG

	case 0x88, 0x89:
		m := decodeModRM(bus, addr, n)
		wide := op == 0x89
		d.Dst, d.Src = m.rmOperand(wide), m.regOperand(wide)
		d.Handler = hMOV
	case 0x8A, 0x8B:
		m := decodeModRM(bus, addr, n)
		wide := op == 0x8B
		d.Dst, d.Src = m.regOperand(wide), m.rmOperand(wide)
		d.Handler = hMOV
	case 0x8C:
		m := decodeModRM(bus, addr, n)
		d.Dst, d.Src = m.rmOperand(true), m.segRegOperand()
		d.Handler = hMOV
	case 0x8E:
		m := decodeModRM(bus, addr, n)
		d.Dst, d.Src = m.segRegOperand(), m.rmOperand(true)
		d.Handler = hMOV
	case 0x8D:
		m := decodeModRM(bus, addr, n)
		d.Dst, d.Src = m.regOperand(true), m.rmOperand(true)
		d.Handler = hLEA
	case 0x8F:
		m := decodeModRM(bus, addr, n)
		d.Dst = m.rmOperand(true)
		d.Handler = hPOP

	case 0x90:
		d.Handler = hNOP
	case 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97:
		d.Dst = Operand{Kind: OpReg16, Value: uint16(RegAX)}
		d.Src = Operand{Kind: OpReg16, Value: uint16(op - 0x90)}
		d.Handler = hXCHG
	case 0x98:
		d.Handler = hCBW
	case 0x99:
		d.Handler = hCWD
	case 0x9A:
		d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
		d.Dst = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
		d.Handler = hCALLFAR
	case 0x9B:
		d.Handler = hNOP // WAIT: no coprocessor, treated as a no-op
	case 0x9C:
		d.Handler = hPUSHF
	case 0x9D:
		d.Handler = hPOPF
	case 0x9E:
		d.Handler = hSAHF
	case 0x9F:
		d.Handler = hLAHF

	case 0xA0:
		d.Dst = Operand{Kind: OpReg8, Value: uint16(RegAX)}
		d.Src = Operand{Kind: OpDirect, DefaultSeg: SegDS, Disp: fetchWord(bus, addr, n)}
		d.Handler = hMOV
	case 0xA1:
		d.Dst = Operand{Kind: OpReg16, Value: uint16(RegAX)}
		d.Src = Operand{Kind: OpDirect, DefaultSeg: SegDS, Disp: fetchWord(bus, addr, n), Wide: true}
		d.Handler = hMOV
	case 0xA2:
		d.Dst = Operand{Kind: OpDirect, DefaultSeg: SegDS, Disp: fetchWord(bus, addr, n)}
		d.Src = Operand{Kind: OpReg8, Value: uint16(RegAX)}
		d.Handler = hMOV
	case 0xA3:
		d.Dst = Operand{Kind: OpDirect, DefaultSeg: SegDS, Disp: fetchWord(bus, addr, n), Wide: true}
		d.Src = Operand{Kind: OpReg16, Value: uint16(RegAX)}
		d.Handler = hMOV
	case 0xA4:
		d.Handler = hMOVSB
	case 0xA5:
		d.Handler = hMOVSW
	case 0xA6:
		d.Handler = hCMPSB
	case 0xA7:
		d.Handler = hCMPSW
	case 0xA8:
		d.Dst = Operand{Kind: OpReg8, Value: uint16(RegAX)}
		d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		d.Handler = hTEST
	case 0xA9:
		d.Dst = Operand{Kind: OpReg16, Value: uint16(RegAX)}
		d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
		d.Handler = hTEST
	case 0xAA:
		d.Handler = hSTOSB
	case 0xAB:
		d.Handler = hSTOSW
	case 0xAC:
		d.Handler = hLODSB
	case 0xAD:
		d.Handler = hLODSW
	case 0xAE:
		d.Handler = hSCASB
	case 0xAF:
		d.Handler = hSCASW

	case 0xC2:
		d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
		d.Handler = hRETNEAR
	case 0xC3:
		d.Handler = hRETNEAR
	case 0xC4:
		m := decodeModRM(bus, addr, n)
		d.Dst, d.Src = m.regOperand(true), m.rmOperand(true)
		d.Handler = hLES
	case 0xC5:
		m := decodeModRM(bus, addr, n)
		d.Dst, d.Src = m.regOperand(true), m.rmOperand(true)
		d.Handler = hLDS
	case 0xC6:
		m := decodeModRM(bus, addr, n)
		d.Dst = m.rmOperand(false)
		d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		d.Handler = hMOV
	case 0xC7:
		m := decodeModRM(bus, addr, n)
		d.Dst = m.rmOperand(true)
		d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
		d.Handler = hMOV
	case 0xCA:
		d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
		d.Handler = hRETFAR
	case 0xCB:
		d.Handler = hRETFAR
	case 0xCC:
		d.Handler = hINT3
	case 0xCD:
		d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		d.Handler = hINT
	case 0xCE:
		d.Handler = hINTO
	case 0xCF:
		d.Handler = hIRET

	case 0xD0, 0xD1, 0xD2, 0xD3:
		m := decodeModRM(bus, addr, n)
		wide := op == 0xD1 || op == 0xD3
		d.Dst = stashGroupReg(m.rmOperand(wide), m.reg)
		if op == 0xD0 || op == 0xD1 {
			d.Src = Operand{Kind: OpImm8, Value: 1}
		} else {
			d.Src = Operand{Kind: OpReg8, Value: uint16(RegCX)} // CL = reg8 index 1
		}
		d.Handler = hShiftGroup
	case 0xD4:
		d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		d.Handler = hAAM
	case 0xD5:
		d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		d.Handler = hAAD
	case 0xD7:
		d.Handler = hXLAT
	case 0xD8, 0xD9, 0xDA, 0xDB, 0xDC, 0xDD, 0xDE, 0xDF:
		// ESC: no coprocessor attached; still consume a ModR/M so
		// program length stays correct for code that probes for one.
		decodeModRM(bus, addr, n)
		d.Handler = hNOP

	case 0xE0:
		d.Src = Operand{Kind: OpRel8, Value: uint16(int16(int8(fetchByte(bus, addr, n))))}
		d.Handler = hLOOPNE
	case 0xE1:
		d.Src = Operand{Kind: OpRel8, Value: uint16(int16(int8(fetchByte(bus, addr, n))))}
		d.Handler = hLOOPE
	case 0xE2:
		d.Src = Operand{Kind: OpRel8, Value: uint16(int16(int8(fetchByte(bus, addr, n))))}
		d.Handler = hLOOP
	case 0xE3:
		d.Src = Operand{Kind: OpRel8, Value: uint16(int16(int8(fetchByte(bus, addr, n))))}
		d.Handler = hJCXZ
	case 0xE4:
		d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		d.Dst = Operand{Kind: OpReg8, Value: uint16(RegAX)}
		d.Handler = hINByte
	case 0xE5:
		d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		d.Dst = Operand{Kind: OpReg16, Value: uint16(RegAX)}
		d.Handler = hINWord
	case 0xE6:
		d.Dst = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		d.Src = Operand{Kind: OpReg8, Value: uint16(RegAX)}
		d.Handler = hOUTByte
	case 0xE7:
		d.Dst = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		d.Src = Operand{Kind: OpReg16, Value: uint16(RegAX)}
		d.Handler = hOUTWord
	case 0xE8:
		d.Src = Operand{Kind: OpRel16, Value: fetchWord(bus, addr, n)}
		d.Handler = hCALLNEAR
	case 0xE9:
		d.Src = Operand{Kind: OpRel16, Value: fetchWord(bus, addr, n)}
		d.Handler = hJMPNEAR
	case 0xEA:
		d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
		d.Dst = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
		d.Handler = hJMPFAR
	case 0xEB:
		d.Src = Operand{Kind: OpRel8, Value: uint16(int16(int8(fetchByte(bus, addr, n))))}
		d.Handler = hJMPSHORT
	case 0xEC:
		d.Dst = Operand{Kind: OpReg8, Value: uint16(RegAX)}
		d.Handler = hINByte
	case 0xED:
		d.Dst = Operand{Kind: OpReg16, Value: uint16(RegAX)}
		d.Handler = hINWord
	case 0xEE:
		d.Src = Operand{Kind: OpReg8, Value: uint16(RegAX)}
		d.Handler = hOUTByte
	case 0xEF:
		d.Src = Operand{Kind: OpReg16, Value: uint16(RegAX)}
		d.Handler = hOUTWord

	case 0xF4:
		d.Handler = hHLT
	case 0xF5:
		d.Handler = hCMC
	case 0xF6, 0xF7:
		m := decodeModRM(bus, addr, n)
		wide := op == 0xF7
		d.Dst = stashGroupReg(m.rmOperand(wide), m.reg)
		if m.reg == 0 || m.reg == 1 {
			if wide {
				d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
			} else {
				d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
			}
		}
		d.Handler = hUnaryGroup
	case 0xF8:
		d.Handler = hCLC
	case 0xF9:
		d.Handler = hSTC
	case 0xFA:
		d.Handler = hCLI
	case 0xFB:
		d.Handler = hSTI
	case 0xFC:
		d.Handler = hCLD
	case 0xFD:
		d.Handler = hSTD
	case 0xFE:
		m := decodeModRM(bus, addr, n)
		d.Dst = stashGroupReg(m.rmOperand(false), m.reg)
		d.Handler = hIncDecGroup8
	case 0xFF:
		m := decodeModRM(bus, addr, n)
		d.Dst = stashGroupReg(m.rmOperand(true), m.reg)
		d.Handler = hGroupFF

	case 0x80, 0x81, 0x82, 0x83:
		m := decodeModRM(bus, addr, n)
		wide := op == 0x81 || op == 0x83
		d.Dst = stashGroupReg(m.rmOperand(wide), m.reg)
		switch op {
		case 0x80, 0x82:
			d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
		case 0x81:
			d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
		case 0x83:
			v := int16(int8(fetchByte(bus, addr, n)))
			d.Src = Operand{Kind: OpImm16, Value: uint16(v)}
		}
		d.Handler = hImmALUGroup

	default:
		if op >= 0x40 && op <= 0x47 {
			d.Dst = Operand{Kind: OpReg16, Value: uint16(op - 0x40)}
			d.Handler = hINCreg
		} else if op >= 0x48 && op <= 0x4F {
			d.Dst = Operand{Kind: OpReg16, Value: uint16(op - 0x48)}
			d.Handler = hDECreg
		} else if op >= 0x50 && op <= 0x57 {
			d.Dst = Operand{Kind: OpReg16, Value: uint16(op - 0x50)}
			d.Handler = hPUSH
		} else if op >= 0x58 && op <= 0x5F {
			d.Dst = Operand{Kind: OpReg16, Value: uint16(op - 0x58)}
			d.Handler = hPOP
		} else if op >= 0x70 && op <= 0x7F {
			d.Src = Operand{Kind: OpRel8, Value: uint16(int16(int8(fetchByte(bus, addr, n))))}
			d.Handler = hJcc
		} else if op >= 0xB0 && op <= 0xB7 {
			d.Dst = Operand{Kind: OpReg8, Value: uint16(op - 0xB0)}
			d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
			d.Handler = hMOV
		} else if op >= 0xB8 && op <= 0xBF {
			d.Dst = Operand{Kind: OpReg16, Value: uint16(op - 0xB8)}
			d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
			d.Handler = hMOV
		} else {
			d.Handler = handlerInvalidOpcode
		}
	}
}

// decodeALUBlock decodes the 0x00-0x3D two-operand ALU block shared by
// ADD/OR/ADC/SBB/AND/SUB/XOR/CMP (base = op&0x38, form = op&7).
func decodeALUBlock(bus *MemoryBus, addr uint32, n *uint8, op byte, d *DecodedInstruction) {
	kind := (op >> 3) & 7
	form := op & 7
	h := aluHandlers[kind]
	switch form {
	case 0:
		m := decodeModRM(bus, addr, n)
		d.Dst, d.Src = m.rmOperand(false), m.regOperand(false)
	case 1:
		m := decodeModRM(bus, addr, n)
		d.Dst, d.Src = m.rmOperand(true), m.regOperand(true)
	case 2:
		m := decodeModRM(bus, addr, n)
		d.Dst, d.Src = m.regOperand(false), m.rmOperand(false)
	case 3:
		m := decodeModRM(bus, addr, n)
		d.Dst, d.Src = m.regOperand(true), m.rmOperand(true)
	case 4:
		d.Dst = Operand{Kind: OpReg8, Value: uint16(RegAX)}
		d.Src = Operand{Kind: OpImm8, Value: uint16(fetchByte(bus, addr, n))}
	case 5:
		d.Dst = Operand{Kind: OpReg16, Value: uint16(RegAX)}
		d.Src = Operand{Kind: OpImm16, Value: fetchWord(bus, addr, n)}
	}
	d.Handler = h
}
