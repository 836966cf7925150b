//go:build !headless

// hostwindow.go - ebiten-backed display window for the CLI
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// Opens a window, blits the MDA
// render routine's output once per host frame, and forwards key
// presses through a fixed US-QWERTY scancode table into the PPI's
// host-input lane. The core itself never sees a raw ebiten key, only
// the already-translated scancode byte - scancode translation is a
// host concern kept out of the core on purpose.

package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	hostWindowW = mdaFrameW
	hostWindowH = mdaFrameH
)

// HostWindow is the ebiten.Game implementation that drives the
// machine's video output. It does not step the CPU - a DebugMonitor
// (run from its own goroutine) does that; HostWindow only renders
// whatever the VRAM window holds on each host frame and relays keys.
type HostWindow struct {
	m    *Machine
	font []byte

	frame  []byte
	screen *ebiten.Image
}

func NewHostWindow(m *Machine, font []byte) *HostWindow {
	return &HostWindow{
		m:     m,
		font:  font,
		frame: make([]byte, hostWindowW*hostWindowH*4),
	}
}

// Run opens the window and blocks until it is closed.
func (hw *HostWindow) Run(title string) error {
	ebiten.SetWindowSize(hostWindowW, hostWindowH)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(hw)
}

func (hw *HostWindow) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	for key, code := range qwertyScancodes {
		if inpututil.IsKeyJustPressed(key) {
			hw.m.PPI.PushScancode(code)
		}
	}
	return nil
}

func (hw *HostWindow) Draw(screen *ebiten.Image) {
	vram := hw.m.Bus.VRAMSnapshot()
	RenderMDAFrame(vram, hw.font, hw.frame)
	if hw.screen == nil {
		hw.screen = ebiten.NewImage(hostWindowW, hostWindowH)
	}
	hw.screen.WritePixels(hw.frame)
	screen.DrawImage(hw.screen, nil)
}

func (hw *HostWindow) Layout(_, _ int) (int, int) {
	return hostWindowW, hostWindowH
}

// qwertyScancodes maps the alphanumeric and a handful of control keys
// to their IBM XT (scancode set 1) make codes. This is deliberately a
// small, fixed table - full keyboard layout translation is out of
// scope, the core only ever needs a plausible scancode byte per key.
var qwertyScancodes = map[ebiten.Key]byte{
	ebiten.KeyA: 0x1E, ebiten.KeyB: 0x30, ebiten.KeyC: 0x2E, ebiten.KeyD: 0x20,
	ebiten.KeyE: 0x12, ebiten.KeyF: 0x21, ebiten.KeyG: 0x22, ebiten.KeyH: 0x23,
	ebiten.KeyI: 0x17, ebiten.KeyJ: 0x24, ebiten.KeyK: 0x25, ebiten.KeyL: 0x26,
	ebiten.KeyM: 0x32, ebiten.KeyN: 0x31, ebiten.KeyO: 0x18, ebiten.KeyP: 0x19,
	ebiten.KeyQ: 0x10, ebiten.KeyR: 0x13, ebiten.KeyS: 0x1F, ebiten.KeyT: 0x14,
	ebiten.KeyU: 0x16, ebiten.KeyV: 0x2F, ebiten.KeyW: 0x11, ebiten.KeyX: 0x2D,
	ebiten.KeyY: 0x15, ebiten.KeyZ: 0x2C,

	ebiten.Key0: 0x0B, ebiten.Key1: 0x02, ebiten.Key2: 0x03, ebiten.Key3: 0x04,
	ebiten.Key4: 0x05, ebiten.Key5: 0x06, ebiten.Key6: 0x07, ebiten.Key7: 0x08,
	ebiten.Key8: 0x09, ebiten.Key9: 0x0A,

	ebiten.KeyEnter:     0x1C,
	ebiten.KeySpace:     0x39,
	ebiten.KeyBackspace: 0x0E,
	ebiten.KeyTab:       0x0F,
	ebiten.KeyEscape:    0x01,
}
