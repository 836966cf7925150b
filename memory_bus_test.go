package main

import "testing"

func TestMemoryBus_RAMReadWrite(t *testing.T) {
	b := NewMemoryBus(nil)
	b.Write(0x1234, 0x42)
	if got := b.Read(0x1234); got != 0x42 {
		t.Fatalf("got %#02x, want 0x42", got)
	}
}

func TestMemoryBus_UnmappedReadsFF(t *testing.T) {
	b := NewMemoryBus(nil)
	if got := b.Read(0x20000); got != 0xFF {
		t.Fatalf("unmapped read: got %#02x, want 0xFF", got)
	}
}

func TestMemoryBus_ROMWritesAreDropped(t *testing.T) {
	b := NewMemoryBus(nil)
	if err := b.LoadROM([]byte{0xAA, 0xBB}); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	last := uint32(0xFFFFF)
	before := b.Read(last)
	b.Write(last, 0x00)
	if got := b.Read(last); got != before {
		t.Fatalf("ROM write was not dropped: got %#02x, want %#02x", got, before)
	}
}

func TestMemoryBus_LoadROMTooLarge(t *testing.T) {
	b := NewMemoryBus(nil)
	if err := b.LoadROM(make([]byte, romSize+1)); err != ErrROMTooLarge {
		t.Fatalf("expected ErrROMTooLarge, got %v", err)
	}
}

func TestMemoryBus_LoadROMInstallsAtTopOfWindow(t *testing.T) {
	b := NewMemoryBus(nil)
	data := []byte{0x11, 0x22, 0x33}
	if err := b.LoadROM(data); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	if got := b.Read(0xFFFFF); got != 0x33 {
		t.Fatalf("reset vector byte: got %#02x, want 0x33", got)
	}
	if got := b.Read(0xFFFFD); got != 0x11 {
		t.Fatalf("first byte of image: got %#02x, want 0x11", got)
	}
}

func TestMemoryBus_VRAMReadWriteAndSnapshot(t *testing.T) {
	b := NewMemoryBus(nil)
	b.Write(mdaVRAMBase, 'A')
	b.Write(mdaVRAMBase+1, 0x07)
	snap := b.VRAMSnapshot()
	if snap[0] != 'A' || snap[1] != 0x07 {
		t.Fatalf("unexpected VRAM snapshot: %v", snap[:2])
	}
}

func TestMemoryBus_WriteInvalidatesDecodeCache(t *testing.T) {
	cache := NewDecodeCache(16)
	b := NewMemoryBus(cache)
	cache.Insert(0x100, DecodedInstruction{Length: 1})
	if _, ok := cache.Lookup(0x100); !ok {
		t.Fatal("expected cache hit before write")
	}
	b.Write(0x100, 0x90)
	if _, ok := cache.Lookup(0x100); ok {
		t.Fatal("expected write to invalidate the cached entry")
	}
}

func TestMemoryBus_PortIODispatch(t *testing.T) {
	b := NewMemoryBus(nil)
	pic := NewPIC()
	b.RegisterDevice(pic)
	b.Out(0x21, 0x55)
	if got := b.In(0x21); got != 0x55 {
		t.Fatalf("IMR readback: got %#02x, want 0x55", got)
	}
	if got := b.In(0x99); got != 0xFF {
		t.Fatalf("unmapped port read: got %#02x, want 0xFF", got)
	}
}

func TestMemoryBus_FirstRegisteredDeviceWins(t *testing.T) {
	b := NewMemoryBus(nil)
	first := NewPIC()
	second := NewPIC()
	b.RegisterDevice(first)
	b.RegisterDevice(second)
	first.Out(0x21, 0x11)
	second.Out(0x21, 0x22)
	if got := b.In(0x21); got != 0x11 {
		t.Fatalf("expected the first-registered device's state, got %#02x", got)
	}
}
