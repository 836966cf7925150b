// video_mda.go - MDA text-mode framebuffer rendering
//
// (c) 2024-2026 Zayn Otley - GPLv3 or later
//
// Pure function of (VRAM snapshot, font ROM): no peripheral state,
// no ticking. 80x25 text cells, 9x14 pixels per cell (8 font columns
// plus one blank column), giving the documented 720x350 frame.

package main

const (
	mdaCols       = 80
	mdaRows       = 25
	mdaCellWidth  = 9
	mdaCellHeight = 14
	mdaFrameW     = mdaCols * mdaCellWidth
	mdaFrameH     = mdaRows * mdaCellHeight
	mdaVRAMSize   = mdaCols * mdaRows * 2
	mdaFontSize   = 256 * mdaCellHeight
)

// mdaNormal and mdaBright are the two foreground intensities an MDA
// adapter supports; background is always black.
var mdaNormal = [3]byte{0xAA, 0xAA, 0xAA}
var mdaBright = [3]byte{0xFF, 0xFF, 0xFF}

// RenderMDAFrame converts a 4000-byte text VRAM snapshot and a 256x14
// font ROM into a 720x350 RGBA8 framebuffer. vram holds row-major
// {char, attribute} pairs; attribute bit 3 selects high intensity.
func RenderMDAFrame(vram, font []byte, out []byte) {
	if len(vram) < mdaVRAMSize || len(font) < mdaFontSize || len(out) < mdaFrameW*mdaFrameH*4 {
		return
	}
	for row := 0; row < mdaRows; row++ {
		for col := 0; col < mdaCols; col++ {
			cellOff := (row*mdaCols + col) * 2
			ch := vram[cellOff]
			attr := vram[cellOff+1]
			fg := mdaNormal
			if attr&0x08 != 0 {
				fg = mdaBright
			}
			glyph := font[int(ch)*mdaCellHeight : int(ch)*mdaCellHeight+mdaCellHeight]
			for gy := 0; gy < mdaCellHeight; gy++ {
				bits := glyph[gy]
				py := row*mdaCellHeight + gy
				rowBase := py * mdaFrameW * 4
				for gx := 0; gx < 8; gx++ {
					px := col*mdaCellWidth + gx
					on := bits&(0x80>>uint(gx)) != 0
					writeRGBA(out, rowBase+px*4, on, fg)
				}
				// Ninth column: blank, except MDA's line-drawing glyphs
				// (0xB0-0xDF) repeat column 8 into column 9.
				px := col*mdaCellWidth + 8
				on := ch >= 0xB0 && ch <= 0xDF && bits&0x01 != 0
				writeRGBA(out, rowBase+px*4, on, fg)
			}
		}
	}
}

func writeRGBA(out []byte, off int, on bool, fg [3]byte) {
	if !on {
		out[off], out[off+1], out[off+2], out[off+3] = 0, 0, 0, 0xFF
		return
	}
	out[off], out[off+1], out[off+2], out[off+3] = fg[0], fg[1], fg[2], 0xFF
}
