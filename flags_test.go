// flags_test.go - lazy flag store semantics
package main

import "testing"

func newFlagsCPU() *CPU {
	m := NewMachine(0)
	m.CPU.SetLogger(nullLogger{})
	return m.CPU
}

func TestFlags_ReservedBitAlwaysSet(t *testing.T) {
	c := newFlagsCPU()
	c.SetFlags(0x0000)
	if c.GetFlags()&0x0002 == 0 {
		t.Fatal("bit 1 of FLAGS must read as set after any write")
	}
	c.SetFlag(FlagCF, false)
	if c.GetFlags()&0x0002 == 0 {
		t.Fatal("bit 1 of FLAGS must survive single-bit writes")
	}
}

func TestFlags_LazyAddMaterializesOnFirstRead(t *testing.T) {
	c := newFlagsCPU()
	c.flagsAdd8(0x7F, 1) // 0x80: signed overflow, negative, odd parity
	if c.ZF() {
		t.Fatal("ZF must be clear for a nonzero result")
	}
	if !c.SF() {
		t.Fatal("SF must reflect bit 7 of the byte result")
	}
	if c.PF() {
		t.Fatal("PF must be clear for a one-bit result byte")
	}
	if c.CF() {
		t.Fatal("CF must be clear: no carry out of bit 8")
	}
	if !c.OF() {
		t.Fatal("OF must be set: 0x7F+1 overflows signed byte range")
	}
}

func TestFlags_MaterializeIsIdempotent(t *testing.T) {
	c := newFlagsCPU()
	c.flagsAdd16(0x00FF, 0x0004)
	first := c.GetFlags()
	second := c.GetFlags()
	if first != second {
		t.Fatalf("repeated reads disagree: %#04x then %#04x", first, second)
	}
}

func TestFlags_ExplicitWriteClearsLazySlot(t *testing.T) {
	c := newFlagsCPU()
	c.flagsAdd8(1, 1) // lazy ZF would materialize as 0
	c.SetFlag(FlagZF, true)
	if !c.ZF() {
		t.Fatal("an explicit SetFlag must survive later reads, not be overwritten by the stale lazy slot")
	}
}

func TestFlags_AdcCarryOutSurvivesOperandWrap(t *testing.T) {
	// 0x00 + 0xFF + carry = 0x100: the addend is at the byte-width
	// ceiling, so the carry cannot be pre-folded into it without
	// wrapping away the carry-out.
	c := newFlagsCPU()
	r := c.flagsAdc8(0x00, 0xFF, true)
	if r != 0 {
		t.Fatalf("result: got %#02x, want 0", r)
	}
	if !c.CF() {
		t.Fatal("CF must be set: 0x00+0xFF+1 carries out of bit 8")
	}
	if !c.ZF() {
		t.Fatal("ZF must be set for a zero truncated result")
	}
	if c.OF() {
		t.Fatal("OF must be clear: no signed overflow in 0 + (-1) + 1")
	}
}

func TestFlags_Adc16CarryOutSurvivesOperandWrap(t *testing.T) {
	c := newFlagsCPU()
	r := c.flagsAdc16(0x0000, 0xFFFF, true)
	if r != 0 || !c.CF() || !c.ZF() {
		t.Fatalf("got r=%#04x CF=%v ZF=%v, want 0/true/true", r, c.CF(), c.ZF())
	}
}

func TestFlags_SbbBorrowWithMaxSubtrahend(t *testing.T) {
	c := newFlagsCPU()
	r := c.flagsSbb8(0x00, 0xFF, true)
	if r != 0 {
		t.Fatalf("result: got %#02x, want 0", r)
	}
	if !c.CF() {
		t.Fatal("CF must be set: 0 - 0xFF - 1 borrows")
	}
	if !c.ZF() {
		t.Fatal("ZF must be set for the wrapped-to-zero result")
	}
}

func TestFlags_AdcHalfCarryIncludesCarryIn(t *testing.T) {
	c := newFlagsCPU()
	c.flagsAdc8(0x0F, 0x00, true) // low nibbles 0xF + 0 + 1 carry into bit 4
	if !c.AF() {
		t.Fatal("AF must account for the carry-in term")
	}
}

func TestFlags_LogicalOpsClearCarryAndOverflow(t *testing.T) {
	c := newFlagsCPU()
	c.SetFlag(FlagCF, true)
	c.SetFlag(FlagOF, true)
	c.flagsLogic8(0xF0, FlagOpAnd8)
	if c.CF() || c.OF() {
		t.Fatalf("CF=%v OF=%v after a logical op, want both clear", c.CF(), c.OF())
	}
	if !c.SF() || c.ZF() {
		t.Fatalf("SF=%v ZF=%v for result 0xF0, want SF=1 ZF=0", c.SF(), c.ZF())
	}
}

func TestFlags_ParityComesFromLowByteOnly(t *testing.T) {
	c := newFlagsCPU()
	c.flagsAdd16(0x0100, 0x0003) // result 0x0103: low byte 0x03 has even parity
	if !c.PF() {
		t.Fatal("PF must be computed from the low byte alone")
	}
	c.flagsAdd16(0x0100, 0x0001) // result 0x0101: low byte 0x01, odd parity
	if c.PF() {
		t.Fatal("PF must be clear for an odd-parity low byte")
	}
}

func TestFlags_SubCarryIsBorrow(t *testing.T) {
	c := newFlagsCPU()
	c.flagsSub8(0x00, 0x01)
	if !c.CF() {
		t.Fatal("CF must be set when the subtraction borrows")
	}
	c.flagsSub8(0x02, 0x01)
	if c.CF() {
		t.Fatal("CF must be clear when no borrow occurs")
	}
}

func TestFlags_IncDecNeverTouchCarry(t *testing.T) {
	c := newFlagsCPU()
	c.SetFlag(FlagCF, true)
	c.flagsInc16(0xFFFF) // wraps to zero, which for ADD would set CF
	if !c.CF() {
		t.Fatal("INC must leave CF untouched even when the result wraps")
	}
	if !c.ZF() {
		t.Fatal("ZF must still track the INC result")
	}
	c.SetFlag(FlagCF, false)
	c.flagsDec16(0x0000)
	if c.CF() {
		t.Fatal("DEC must leave CF untouched even when the operand wraps")
	}
}
