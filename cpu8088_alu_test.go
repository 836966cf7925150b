// cpu8088_alu_test.go - boundary cases for the ALU,
// decimal-adjust, and fault-abort paths.
package main

import "testing"

func TestALU_AddByteOverflowSetsOFAndSF(t *testing.T) {
	m := newTestMachine([]byte{0x04, 0x01}) // ADD AL, 1
	m.CPU.SetReg8(RegAX, 0x7F)
	m.CPU.Step()
	if m.CPU.AX()&0xFF != 0x80 {
		t.Fatalf("AL: got %#02x, want 0x80", m.CPU.AX()&0xFF)
	}
	if !m.CPU.OF() || !m.CPU.SF() || m.CPU.CF() || m.CPU.ZF() {
		t.Fatalf("flags: OF=%v SF=%v CF=%v ZF=%v, want OF=1 SF=1 CF=0 ZF=0",
			m.CPU.OF(), m.CPU.SF(), m.CPU.CF(), m.CPU.ZF())
	}
}

func TestALU_AddByteWrapSetsCFAndZF(t *testing.T) {
	m := newTestMachine([]byte{0x04, 0x01}) // ADD AL, 1
	m.CPU.SetReg8(RegAX, 0xFF)
	m.CPU.Step()
	if m.CPU.AX()&0xFF != 0 {
		t.Fatalf("AL: got %#02x, want 0", m.CPU.AX()&0xFF)
	}
	if !m.CPU.CF() || !m.CPU.ZF() || m.CPU.OF() || m.CPU.SF() {
		t.Fatalf("flags: CF=%v ZF=%v OF=%v SF=%v, want CF=1 ZF=1 OF=0 SF=0",
			m.CPU.CF(), m.CPU.ZF(), m.CPU.OF(), m.CPU.SF())
	}
}

func TestALU_SubByteUnderflowSetsOF(t *testing.T) {
	m := newTestMachine([]byte{0x2C, 0x01}) // SUB AL, 1
	m.CPU.SetReg8(RegAX, 0x80)
	m.CPU.Step()
	if !m.CPU.OF() || m.CPU.CF() {
		t.Fatalf("flags: OF=%v CF=%v, want OF=1 CF=0", m.CPU.OF(), m.CPU.CF())
	}
}

func TestALU_IncWordOverflowSetsOFNotCF(t *testing.T) {
	m := newTestMachine([]byte{0x41}) // INC CX
	m.CPU.SetReg16(RegCX, 0x7FFF)
	m.CPU.SetFlag(FlagCF, true) // CF must be left untouched by INC
	m.CPU.Step()
	if m.CPU.CX() != 0x8000 {
		t.Fatalf("CX: got %#04x, want 0x8000", m.CPU.CX())
	}
	if !m.CPU.OF() {
		t.Fatal("expected OF set by INC 0x7FFF")
	}
	if !m.CPU.CF() {
		t.Fatal("expected CF left untouched (still set) by INC")
	}
}

func TestALU_DAA_ALHighNibbleCarry(t *testing.T) {
	m := newTestMachine([]byte{0x27}) // DAA
	m.CPU.SetReg8(RegAX, 0x9F)
	m.CPU.SetFlag(FlagAF, false)
	m.CPU.SetFlag(FlagCF, false)
	m.CPU.Step()
	if al := m.CPU.AX() & 0xFF; al != 0x05 {
		t.Fatalf("AL: got %#02x, want 0x05", al)
	}
	if !m.CPU.CF() || !m.CPU.AF() {
		t.Fatalf("flags: CF=%v AF=%v, want both set", m.CPU.CF(), m.CPU.AF())
	}
}

func TestALU_NotTwiceIsIdentity(t *testing.T) {
	m := newTestMachine([]byte{0xF7, 0xD0, 0xF7, 0xD0}) // NOT AX ; NOT AX
	m.CPU.SetReg16(RegAX, 0x1234)
	m.CPU.Step()
	if m.CPU.AX() == 0x1234 {
		t.Fatal("expected NOT to change AX")
	}
	m.CPU.Step()
	if m.CPU.AX() != 0x1234 {
		t.Fatalf("AX: got %#04x, want 0x1234 after NOT twice", m.CPU.AX())
	}
}

func TestALU_NegOfMinIntTogglesCFOnly(t *testing.T) {
	m := newTestMachine([]byte{0xF7, 0xD8}) // NEG AX
	m.CPU.SetReg16(RegAX, 0x8000)
	m.CPU.Step()
	if m.CPU.AX() != 0x8000 {
		t.Fatalf("AX: got %#04x, want 0x8000 (fixed point)", m.CPU.AX())
	}
	if !m.CPU.CF() {
		t.Fatal("expected CF set by NEG of a nonzero operand")
	}
}

func TestALU_PushfPopfRoundTrip(t *testing.T) {
	m := newTestMachine([]byte{0x9C, 0x9D}) // PUSHF ; POPF
	m.CPU.SetFlags(0x8FD5)
	before := m.CPU.GetFlags()
	m.CPU.Step()
	m.CPU.Step()
	if m.CPU.GetFlags() != before {
		t.Fatalf("flags: got %#04x, want %#04x after PUSHF/POPF", m.CPU.GetFlags(), before)
	}
}

func TestALU_SahfLahfRoundTrip(t *testing.T) {
	m := newTestMachine([]byte{0x9E, 0x9F}) // SAHF ; LAHF
	m.CPU.SetReg8(RegAX+4, 0xD5) // AH
	m.CPU.Step()
	m.CPU.Step()
	if ah := byte(m.CPU.AX() >> 8); ah != 0xD5 {
		t.Fatalf("AH: got %#02x, want 0xD5 after SAHF/LAHF", ah)
	}
}

func TestALU_AamThenAadIsIdentity(t *testing.T) {
	m := newTestMachine([]byte{0xD4, 0x0A, 0xD5, 0x0A}) // AAM 10 ; AAD 10
	m.CPU.SetReg8(RegAX, 57)
	m.CPU.Step()
	m.CPU.Step()
	if al := m.CPU.AX() & 0xFF; al != 57 {
		t.Fatalf("AL: got %d, want 57 after AAM 10 / AAD 10", al)
	}
}

func TestALU_DivideByZeroIsAFatalAbort(t *testing.T) {
	m := newTestMachine([]byte{0xF7, 0xF3}) // DIV BX
	m.CPU.SetReg16(RegDX, 0)
	m.CPU.SetReg16(RegAX, 10)
	m.CPU.SetReg16(RegBX, 0)
	m.CPU.Step()
	if m.CPU.Running() {
		t.Fatal("expected a divide-by-zero to stop the core")
	}
	fault := m.CPU.LastFault()
	if fault == nil {
		t.Fatal("expected LastFault to be set")
	}
}

func TestALU_InvalidOpcodeIsAFatalAbort(t *testing.T) {
	m := newTestMachine([]byte{0x0F}) // no two-byte map on the 8088
	m.CPU.Step()
	if m.CPU.Running() {
		t.Fatal("expected an invalid opcode to stop the core")
	}
	if m.CPU.LastFault() == nil {
		t.Fatal("expected LastFault to be set")
	}
}
