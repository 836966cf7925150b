// resettable.go - restart-to-defaults for the bus and its peripherals
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// CPU.Reset lives on the CPU itself (cpu8088.go). The methods here cover
// everything else the test harness and the CLI's restart path need to
// bring back to power-on state without reconstructing the whole machine:
// RAM is cleared and the decode cache invalidated wholesale, but ROM and
// the registered device list both survive a reset untouched.

package main

// Reset clears RAM and wholesale-invalidates the decode cache. ROM and
// the registered peripheral list are left as they are; callers that want
// a fully cold machine reset each peripheral separately.
func (b *MemoryBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.ram {
		b.ram[i] = 0
	}
	for i := range b.vram {
		b.vram[i] = 0
	}
	if b.cache != nil {
		b.cache.InvalidateRange(ramBase, ramSize)
		b.cache.InvalidateRange(mdaVRAMBase, mdaVRAMWindow)
	}
}

// Reset returns the PIC to its power-on state: no pending or in-service
// IRQs, no lines masked, initialization sequence idle, vector offset back
// to the BIOS default of 0x08.
func (p *PIC) Reset() {
	p.irr, p.isr, p.imr = 0, 0, 0
	p.lineLevel = 0
	p.vectorOffset = 0x08
	p.initStep = 0
	p.icw1 = 0
	p.readISR = false
}

// Reset drops the scancode queue, the port 0x61 control latch, and any
// pending self-test byte. It does not close the queue channel, so the
// host-input lane can keep pushing across a reset.
func (p *PPI) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.portB = 0
	p.pending = false
	p.latchedCode = 0
	p.resetAsserted = false
	p.selfTestPending = false
	for {
		select {
		case <-p.queue:
		default:
			return
		}
	}
}

// Reset zeroes all three counters and their access-mode state machines.
// A reset PIT counter is unarmed until the BIOS reprograms it.
func (t *PIT) Reset() {
	t.cycleFrac = 0
	for i := range t.counters {
		t.counters[i] = pitCounter{}
	}
}
