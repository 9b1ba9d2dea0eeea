package c64

const (
	DISPLAY_WIDTH  = 320
	DISPLAY_HEIGHT = 200

	textColumns = 40
	textRows    = 25
)

// RenderTextFrame produces an indexed-color frame from the current VIC
// state: screen codes from the video matrix, glyphs from the character
// ROM, per-cell colors from color RAM. This is a whole-frame
// approximation, not a beam-accurate render; bitmap and multicolor
// modes fall back to a background fill.
func (c *C64) RenderTextFrame(buffer []uint8) {
	if len(buffer) < DISPLAY_WIDTH*DISPLAY_HEIGHT {
		return
	}

	if !c.VIC.Enabled() {
		fill(buffer, c.VIC.BorderColor())
		return
	}

	background := c.VIC.BackgroundColor(0)

	// Any mode with BMM or MCM set is not drawn.
	if c.VIC.Mode()&0x03 != 0 {
		fill(buffer, background)
		return
	}

	videoMatrix := c.VIC.VideoMatrix()

	for row := 0; row < textRows; row++ {
		for col := 0; col < textColumns; col++ {
			cell := uint16(row*textColumns + col)
			code := c.Memory.Read(videoMatrix + cell)
			color := c.Memory.ReadIO(COLOR_RAM_BASE - 0xD000 + cell)

			for line := 0; line < 8; line++ {
				bits := c.Memory.ReadChar(uint16(code)*8 + uint16(line))
				offset := (row*8+line)*DISPLAY_WIDTH + col*8
				for bit := 0; bit < 8; bit++ {
					if bits&(0x80>>bit) != 0 {
						buffer[offset+bit] = color & 0x0F
					} else {
						buffer[offset+bit] = background
					}
				}
			}
		}
	}
}

func fill(buffer []uint8, color uint8) {
	for i := range buffer {
		buffer[i] = color
	}
}
