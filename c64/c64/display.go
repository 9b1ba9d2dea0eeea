package c64

import (
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"
)

// C64Colors is the standard palette, indexed by the 4-bit color values
// the chips carry.
var C64Colors = []uint32{
	0x000000, // Black
	0xFFFFFF, // White
	0x880000, // Red
	0xAAFFEE, // Cyan
	0xCC44CC, // Purple
	0x00CC55, // Green
	0x0000AA, // Blue
	0xEEEE77, // Yellow
	0xDD8855, // Orange
	0x664400, // Brown
	0xFF7777, // Light red
	0x333333, // Dark grey
	0x777777, // Medium grey
	0xAAFF66, // Light green
	0x0088FF, // Light blue
	0xBBBBBB, // Light grey
}

// Display presents indexed frames through SDL, scaled up from the
// machine's native resolution.
type Display struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	pixels   []byte
}

func NewDisplay() (*Display, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, err
	}

	window, err := sdl.CreateWindow("C64",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		DISPLAY_WIDTH*2, DISPLAY_HEIGHT*2,
		sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, err
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_ABGR8888),
		sdl.TEXTUREACCESS_STREAMING,
		DISPLAY_WIDTH, DISPLAY_HEIGHT)
	if err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, err
	}

	return &Display{
		window:   window,
		renderer: renderer,
		texture:  texture,
		pixels:   make([]byte, DISPLAY_WIDTH*DISPLAY_HEIGHT*4),
	}, nil
}

// Render converts an indexed frame to RGBA and presents it.
func (d *Display) Render(frame []uint8) error {
	for i, index := range frame {
		color := C64Colors[index&0x0F]
		offset := i * 4
		d.pixels[offset+0] = byte(color >> 16) // R
		d.pixels[offset+1] = byte(color >> 8)  // G
		d.pixels[offset+2] = byte(color)       // B
		d.pixels[offset+3] = 0xFF              // A
	}

	if err := d.texture.Update(nil, unsafe.Pointer(&d.pixels[0]), DISPLAY_WIDTH*4); err != nil {
		return err
	}
	if err := d.renderer.Clear(); err != nil {
		return err
	}
	if err := d.renderer.Copy(d.texture, nil, nil); err != nil {
		return err
	}
	d.renderer.Present()
	return nil
}

// PollQuit drains the SDL event queue and reports whether a quit was
// requested.
func (d *Display) PollQuit() bool {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			return true
		}
	}
	return false
}

func (d *Display) Cleanup() {
	if d.texture != nil {
		d.texture.Destroy()
	}
	if d.renderer != nil {
		d.renderer.Destroy()
	}
	if d.window != nil {
		d.window.Destroy()
	}
	sdl.Quit()
}
