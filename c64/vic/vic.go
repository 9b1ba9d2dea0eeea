package vic

import "fmt"

// Base address for VIC-II registers
const VICBase uint16 = 0xD000

// Sprite position registers
const (
	RegSprite0X = 0x00 // $D000
	RegSprite0Y = 0x01 // $D001
	RegSprite1X = 0x02 // $D002
	RegSprite1Y = 0x03 // $D003
	RegSprite2X = 0x04 // $D004
	RegSprite2Y = 0x05 // $D005
	RegSprite3X = 0x06 // $D006
	RegSprite3Y = 0x07 // $D007
	RegSprite4X = 0x08 // $D008
	RegSprite4Y = 0x09 // $D009
	RegSprite5X = 0x0A // $D00A
	RegSprite5Y = 0x0B // $D00B
	RegSprite6X = 0x0C // $D00C
	RegSprite6Y = 0x0D // $D00D
	RegSprite7X = 0x0E // $D00E
	RegSprite7Y = 0x0F // $D00F
)

// Sprite and screen control registers
const (
	RegSpriteXMSB     = 0x10 // $D010 - Bit 8 of each sprite X position
	RegScreenControl1 = 0x11 // $D011
	RegRaster         = 0x12 // $D012
	RegLightPenX      = 0x13 // $D013
	RegLightPenY      = 0x14 // $D014
	RegSpriteEnable   = 0x15 // $D015
	RegScreenControl2 = 0x16 // $D016
	RegSpriteYExpand  = 0x17 // $D017
	RegMemPointers    = 0x18 // $D018
)

// Interrupt registers
const (
	RegInterrupt       = 0x19 // $D019
	RegInterruptEnable = 0x1A // $D01A
)

// Sprite control registers
const (
	RegSpritePriority    = 0x1B // $D01B
	RegSpriteMulticolor  = 0x1C // $D01C
	RegSpriteXExpand     = 0x1D // $D01D
	RegSpriteCollision   = 0x1E // $D01E
	RegSpriteBgCollision = 0x1F // $D01F
)

// Color registers
const (
	RegBorderColor  = 0x20 // $D020
	RegBgColor0     = 0x21 // $D021
	RegBgColor1     = 0x22 // $D022
	RegBgColor2     = 0x23 // $D023
	RegBgColor3     = 0x24 // $D024
	RegSpriteMulti0 = 0x25 // $D025
	RegSpriteMulti1 = 0x26 // $D026
	RegSprite0Color = 0x27 // $D027
	RegSprite1Color = 0x28 // $D028
	RegSprite2Color = 0x29 // $D029
	RegSprite3Color = 0x2A // $D02A
	RegSprite4Color = 0x2B // $D02B
	RegSprite5Color = 0x2C // $D02C
	RegSprite6Color = 0x2D // $D02D
	RegSprite7Color = 0x2E // $D02E
)

// $D02F-$D03F are not connected: reads return $FF, writes are ignored.
const RegLast = 0x3F

// Screen Control 1 ($D011) bit masks
const (
	ScreenControl1Raster8 = 0x80 // Bit 7: Bit 8 of raster compare register
	ScreenControl1ECM     = 0x40 // Bit 6: Extended Color Mode
	ScreenControl1BMM     = 0x20 // Bit 5: Bitmap Mode
	ScreenControl1DEN     = 0x10 // Bit 4: Display Enable
	ScreenControl1RSEL    = 0x08 // Bit 3: Row Select (24/25 rows)
	ScreenControl1YSCROLL = 0x07 // Bits 2-0: Vertical Scroll
)

// Screen Control 2 ($D016) bit masks. Bits 7-6 are unconnected and the
// RES bit reads back as 1.
const (
	ScreenControl2Unused  = 0xC0
	ScreenControl2Reset   = 0x20
	ScreenControl2MCM     = 0x10 // Bit 4: Multicolor Mode
	ScreenControl2CSEL    = 0x08 // Bit 3: Column Select (40/38 columns)
	ScreenControl2XSCROLL = 0x07 // Bits 2-0: Horizontal Scroll
)

// Memory pointer ($D018) bit masks
const (
	MemPointersScreenMask  = 0xF0
	MemPointersCharMask    = 0x0E
	MemPointersScreenShift = 4
	MemPointersCharShift   = 1
)

// Interrupt ($D019) bit masks
const (
	InterruptRaster       = 0x01
	InterruptSpriteBg     = 0x02
	InterruptSpriteSprite = 0x04
	InterruptLightPen     = 0x08
	InterruptIRQFlag      = 0x80
)

// DisplayMode is the three bit pattern (ECM<<2)|(BMM<<1)|MCM. Five of
// the eight combinations produce a picture; the other three are
// preserved verbatim so software reads back what it configured.
type DisplayMode uint8

const (
	MODE_STANDARD_TEXT     DisplayMode = 0x00 // ECM/BMM/MCM = 0/0/0
	MODE_MULTICOLOR_TEXT   DisplayMode = 0x01 // ECM/BMM/MCM = 0/0/1
	MODE_STANDARD_BITMAP   DisplayMode = 0x02 // ECM/BMM/MCM = 0/1/0
	MODE_MULTICOLOR_BITMAP DisplayMode = 0x03 // ECM/BMM/MCM = 0/1/1
	MODE_EXTENDED_TEXT     DisplayMode = 0x04 // ECM/BMM/MCM = 1/0/0
	MODE_INVALID_TEXT      DisplayMode = 0x05 // ECM/BMM/MCM = 1/0/1
	MODE_INVALID_BITMAP1   DisplayMode = 0x06 // ECM/BMM/MCM = 1/1/0
	MODE_INVALID_BITMAP2   DisplayMode = 0x07 // ECM/BMM/MCM = 1/1/1
)

// displayModeFrom rejects anything wider than three bits. The callers
// mask before decoding, so hitting this is a programming error.
func displayModeFrom(value uint8) DisplayMode {
	if value > 0x07 {
		panic(fmt.Sprintf("vic: invalid display mode %#02x", value))
	}
	return DisplayMode(value)
}

func (m DisplayMode) String() string {
	switch m {
	case MODE_STANDARD_TEXT:
		return "text"
	case MODE_MULTICOLOR_TEXT:
		return "multicolor text"
	case MODE_STANDARD_BITMAP:
		return "bitmap"
	case MODE_MULTICOLOR_BITMAP:
		return "multicolor bitmap"
	case MODE_EXTENDED_TEXT:
		return "extended color text"
	default:
		return fmt.Sprintf("invalid (%d)", uint8(m))
	}
}

// Sprite holds the programmer-visible state of one of the eight
// hardware sprites. x is nine bits wide; its top bit lives in $D010.
type Sprite struct {
	enabled    bool
	x          uint16
	y          uint8
	color      uint8
	expandX    bool
	expandY    bool
	multicolor bool
	priority   bool
}

// VIC is the register bank of the MOS 6567/6569 video controller: the
// encoder/decoder between the 47 memory-mapped registers and chip
// state. Raster advancement belongs to the machine clock driving
// SetRasterLine; the bank itself has no cycle method.
type VIC struct {
	// Control
	mode    DisplayMode
	enabled bool
	rsel    bool
	csel    bool
	scrollX uint8
	scrollY uint8

	// Interrupt state, stored verbatim
	irqEnable uint8
	irqStatus uint8

	// Raster counters, nine bits each
	raster        uint16
	rasterCompare uint16

	// Memory pointers
	charBase    uint16
	videoMatrix uint16

	// Color and sprite data
	borderColor      uint8
	backgroundColor  [4]uint8
	sprites          [8]Sprite
	spriteMulticolor [2]uint8

	lightPenPos [2]uint8
}

// NewVIC returns a register bank in its power-on configuration: screen
// enabled, 25 rows by 40 columns, text mode, video matrix at $0400 and
// character generator at $1000.
func NewVIC() *VIC {
	v := &VIC{
		mode:            MODE_STANDARD_TEXT,
		enabled:         true,
		rsel:            true,
		csel:            true,
		scrollY:         3,
		raster:          0x0100,
		charBase:        0x1000,
		videoMatrix:     0x0400,
		borderColor:     0x0E,
		backgroundColor: [4]uint8{0x06, 0, 0, 0},
	}
	for i := range v.sprites {
		v.sprites[i].priority = true
	}
	return v
}

// ReadRegister decodes internal state into the byte programmers
// observe. Unused high bits in the four bit color registers read back
// as 1s; the unconnected tail of the window reads $FF.
func (v *VIC) ReadRegister(reg uint8) uint8 {
	switch reg {
	case RegSprite0X, RegSprite1X, RegSprite2X, RegSprite3X,
		RegSprite4X, RegSprite5X, RegSprite6X, RegSprite7X:
		return uint8(v.sprites[reg>>1].x & 0xFF)

	case RegSprite0Y, RegSprite1Y, RegSprite2Y, RegSprite3Y,
		RegSprite4Y, RegSprite5Y, RegSprite6Y, RegSprite7Y:
		return v.sprites[reg>>1].y

	case RegSpriteXMSB:
		var msb uint8
		for i := range v.sprites {
			if v.sprites[i].x&0x100 != 0 {
				msb |= 1 << i
			}
		}
		return msb

	case RegScreenControl1:
		value := uint8(v.raster>>1) & ScreenControl1Raster8
		value |= (uint8(v.mode) & 0x04) << 4 // ECM
		value |= (uint8(v.mode) & 0x02) << 4 // BMM
		if v.enabled {
			value |= ScreenControl1DEN
		}
		if v.rsel {
			value |= ScreenControl1RSEL
		}
		return value | (v.scrollY & ScreenControl1YSCROLL)

	case RegRaster:
		return uint8(v.raster & 0xFF)

	case RegLightPenX:
		return v.lightPenPos[0]
	case RegLightPenY:
		return v.lightPenPos[1]

	case RegSpriteEnable:
		var enabled uint8
		for i := range v.sprites {
			if v.sprites[i].enabled {
				enabled |= 1 << i
			}
		}
		return enabled

	case RegScreenControl2:
		value := uint8(ScreenControl2Unused | ScreenControl2Reset)
		value |= (uint8(v.mode) & 0x01) << 4 // MCM
		if v.csel {
			value |= ScreenControl2CSEL
		}
		return value | (v.scrollX & ScreenControl2XSCROLL)

	case RegSpriteYExpand:
		var expand uint8
		for i := range v.sprites {
			if v.sprites[i].expandY {
				expand |= 1 << i
			}
		}
		return expand

	case RegMemPointers:
		vm := uint8(v.videoMatrix>>10) & 0x0F
		cb := uint8(v.charBase>>11) & 0x07
		return vm<<MemPointersScreenShift | cb<<MemPointersCharShift | 0x01

	case RegInterrupt:
		return v.irqStatus
	case RegInterruptEnable:
		return v.irqEnable

	case RegSpritePriority:
		var priority uint8
		for i := range v.sprites {
			if v.sprites[i].priority {
				priority |= 1 << i
			}
		}
		return priority

	case RegSpriteMulticolor:
		var multi uint8
		for i := range v.sprites {
			if v.sprites[i].multicolor {
				multi |= 1 << i
			}
		}
		return multi

	case RegSpriteXExpand:
		var expand uint8
		for i := range v.sprites {
			if v.sprites[i].expandX {
				expand |= 1 << i
			}
		}
		return expand

	// Collision detection is not modelled; both registers read as all
	// ones.
	case RegSpriteCollision, RegSpriteBgCollision:
		return 0xFF

	case RegBorderColor:
		return v.borderColor | 0xF0
	case RegBgColor0, RegBgColor1, RegBgColor2, RegBgColor3:
		return v.backgroundColor[reg-RegBgColor0] | 0xF0
	case RegSpriteMulti0, RegSpriteMulti1:
		return v.spriteMulticolor[reg-RegSpriteMulti0] | 0xF0
	case RegSprite0Color, RegSprite1Color, RegSprite2Color, RegSprite3Color,
		RegSprite4Color, RegSprite5Color, RegSprite6Color, RegSprite7Color:
		return v.sprites[reg-RegSprite0Color].color | 0xF0

	default:
		if reg <= RegLast {
			return 0xFF
		}
		panic(fmt.Sprintf("vic: invalid register %#02x", reg))
	}
}

// WriteRegister parses the byte into internal state.
func (v *VIC) WriteRegister(reg uint8, value uint8) {
	switch reg {
	case RegSprite0X, RegSprite1X, RegSprite2X, RegSprite3X,
		RegSprite4X, RegSprite5X, RegSprite6X, RegSprite7X:
		sprite := &v.sprites[reg>>1]
		sprite.x = sprite.x&0x100 | uint16(value)

	case RegSprite0Y, RegSprite1Y, RegSprite2Y, RegSprite3Y,
		RegSprite4Y, RegSprite5Y, RegSprite6Y, RegSprite7Y:
		v.sprites[reg>>1].y = value

	case RegSpriteXMSB:
		for i := range v.sprites {
			if value&(1<<i) != 0 {
				v.sprites[i].x |= 0x100
			} else {
				v.sprites[i].x &= 0xFF
			}
		}

	case RegScreenControl1:
		v.rasterCompare = v.rasterCompare&0xFF |
			(uint16(value)&ScreenControl1Raster8)<<1
		mode := uint8(v.mode) &^ 0x06
		mode |= (value & ScreenControl1ECM) >> 4
		mode |= (value & ScreenControl1BMM) >> 4
		v.mode = displayModeFrom(mode)
		v.enabled = value&ScreenControl1DEN != 0
		v.rsel = value&ScreenControl1RSEL != 0
		v.scrollY = value & ScreenControl1YSCROLL

	// A write to $D012 sets the raster line at which a raster interrupt
	// should occur. Bit 8 of the 9-bit compare value comes from bit 7
	// of $D011.
	case RegRaster:
		v.rasterCompare = v.rasterCompare&0x100 | uint16(value)

	case RegLightPenX:
		v.lightPenPos[0] = value
	case RegLightPenY:
		v.lightPenPos[1] = value

	case RegSpriteEnable:
		for i := range v.sprites {
			v.sprites[i].enabled = value&(1<<i) != 0
		}

	case RegScreenControl2:
		mode := uint8(v.mode) &^ 0x01
		mode |= (value & ScreenControl2MCM) >> 4
		v.mode = displayModeFrom(mode)
		v.csel = value&ScreenControl2CSEL != 0
		v.scrollX = value & ScreenControl2XSCROLL

	case RegSpriteYExpand:
		for i := range v.sprites {
			v.sprites[i].expandY = value&(1<<i) != 0
		}

	case RegMemPointers:
		v.videoMatrix = uint16((value&MemPointersScreenMask)>>MemPointersScreenShift) << 10
		v.charBase = uint16((value&MemPointersCharMask)>>MemPointersCharShift) << 11

	case RegInterrupt:
		v.irqStatus = value
	case RegInterruptEnable:
		v.irqEnable = value

	case RegSpritePriority:
		for i := range v.sprites {
			v.sprites[i].priority = value&(1<<i) != 0
		}

	case RegSpriteMulticolor:
		for i := range v.sprites {
			v.sprites[i].multicolor = value&(1<<i) != 0
		}

	case RegSpriteXExpand:
		for i := range v.sprites {
			v.sprites[i].expandX = value&(1<<i) != 0
		}

	// Collision registers are read-only.
	case RegSpriteCollision, RegSpriteBgCollision:

	case RegBorderColor:
		v.borderColor = value & 0x0F
	case RegBgColor0, RegBgColor1, RegBgColor2, RegBgColor3:
		v.backgroundColor[reg-RegBgColor0] = value & 0x0F
	case RegSpriteMulti0, RegSpriteMulti1:
		v.spriteMulticolor[reg-RegSpriteMulti0] = value & 0x0F
	case RegSprite0Color, RegSprite1Color, RegSprite2Color, RegSprite3Color,
		RegSprite4Color, RegSprite5Color, RegSprite6Color, RegSprite7Color:
		v.sprites[reg-RegSprite0Color].color = value & 0x0F

	default:
		if reg > RegLast {
			panic(fmt.Sprintf("vic: invalid register %#02x", reg))
		}
	}
}

// SetRasterLine publishes the current beam line from the machine's
// raster clock. Hitting the programmed compare line latches the raster
// bit in the interrupt register.
func (v *VIC) SetRasterLine(line uint16) {
	v.raster = line & 0x1FF
	if v.raster == v.rasterCompare {
		v.irqStatus |= InterruptRaster
	}
}

// TriggerLightPen latches the light pen position registers.
func (v *VIC) TriggerLightPen(x, y uint8) {
	v.lightPenPos[0] = x
	v.lightPenPos[1] = y
	v.irqStatus |= InterruptLightPen
}

// IRQ reports whether any enabled interrupt source is latched.
func (v *VIC) IRQ() bool {
	return v.irqStatus&v.irqEnable&0x0F != 0
}

// Accessors for the raster engine and frontends. The register bank owns
// the programmer's model; rendering happens elsewhere.

func (v *VIC) Mode() DisplayMode {
	return v.mode
}

func (v *VIC) Enabled() bool {
	return v.enabled
}

func (v *VIC) Raster() uint16 {
	return v.raster
}

func (v *VIC) RasterCompare() uint16 {
	return v.rasterCompare
}

func (v *VIC) VideoMatrix() uint16 {
	return v.videoMatrix
}

func (v *VIC) CharBase() uint16 {
	return v.charBase
}

func (v *VIC) BorderColor() uint8 {
	return v.borderColor
}

func (v *VIC) BackgroundColor(index int) uint8 {
	return v.backgroundColor[index]
}
