//go:build headless

// hostwindow_headless.go - headless stand-in for the display window
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// The -headless CLI path never touches ebiten; this build tag keeps
// the whole backend out of the import graph entirely.

package main

// HostWindow is a no-op stand-in for the real ebiten-backed window: in
// headless builds the debug console drives the machine and nothing
// ever renders a frame.
type HostWindow struct {
	m    *Machine
	font []byte
}

func NewHostWindow(m *Machine, font []byte) *HostWindow {
	return &HostWindow{m: m, font: font}
}

// Run returns immediately; there is no window to open.
func (hw *HostWindow) Run(title string) error {
	return nil
}
