package c64

import (
	"github.com/wberndt/c64/c64/bus"
	"github.com/wberndt/c64/c64/cia"
	"github.com/wberndt/c64/c64/device"
	"github.com/wberndt/c64/c64/memory"
	"github.com/wberndt/c64/c64/sid"
	"github.com/wberndt/c64/c64/vic"
)

const (
	// Clock frequencies
	PAL_CLOCK_HZ  = 985248  // PAL C64 clock frequency
	NTSC_CLOCK_HZ = 1022727 // NTSC C64 clock frequency

	// Video timing constants (PAL)
	CYCLES_PER_LINE  = 63
	LINES_PER_FRAME  = 312
	CYCLES_PER_FRAME = CYCLES_PER_LINE * LINES_PER_FRAME

	// I/O region chip select ranges
	VIC_START      = 0xD000
	VIC_END        = 0xD3FF
	SID_START      = 0xD400
	SID_END        = 0xD7FF
	COLOR_RAM_BASE = 0xD800
	COLOR_RAM_END  = 0xDBFF
	CIA1_START     = 0xDC00
	CIA1_END       = 0xDCFF
	CIA2_START     = 0xDD00
	CIA2_END       = 0xDDFF
)

type TimingConfig struct {
	clockFrequency int
	cyclesPerLine  int
	linesPerFrame  int
}

// Timing is the cycle-accurate master clock: it counts cycles into
// lines and lines into frames.
type Timing struct {
	config TimingConfig

	currentCycle   uint64
	cyclesThisLine int
	currentLine    int
	frameCount     uint64
}

func NewTiming(isPAL bool) *Timing {
	config := TimingConfig{
		clockFrequency: PAL_CLOCK_HZ,
		cyclesPerLine:  CYCLES_PER_LINE,
		linesPerFrame:  LINES_PER_FRAME,
	}
	if !isPAL {
		config.clockFrequency = NTSC_CLOCK_HZ
		config.linesPerFrame = 263 // NTSC has fewer lines
	}
	return &Timing{config: config}
}

// Step advances the clock by one CPU cycle. It reports whether a new
// line started and whether a frame completed.
func (t *Timing) Step() (newLine, frameComplete bool) {
	t.currentCycle++
	t.cyclesThisLine++

	if t.cyclesThisLine >= t.config.cyclesPerLine {
		t.cyclesThisLine = 0
		t.currentLine++
		newLine = true

		if t.currentLine >= t.config.linesPerFrame {
			t.currentLine = 0
			t.frameCount++
			frameComplete = true
		}
	}
	return newLine, frameComplete
}

func (t *Timing) CurrentLine() int {
	return t.currentLine
}

func (t *Timing) CurrentCycle() uint64 {
	return t.currentCycle
}

func (t *Timing) FrameCount() uint64 {
	return t.frameCount
}

// C64 wires the chips together: the memory manager, the VIC register
// bank, the two CIAs, the SID stub and the datassette, connected by the
// processor port and the cassette read line into CIA1's FLAG input.
//
// There is no 6510 here; callers play the CPU's role through ReadBus
// and WriteBus between cycles. Within one cycle the order is fixed:
// bus operations happen first, then the datassette observes the motor
// line and advances its pulse, then CIA1 samples the flag pin. The
// flag level a caller sees on cycle t+1 is the one the datassette
// produced on cycle t.
type C64 struct {
	Memory *memory.Manager
	VIC    *vic.VIC
	SID    *sid.SID
	CIA1   *cia.CIA
	CIA2   *cia.CIA
	Tape   *device.Datassette

	// Shared wires
	CPUPort *bus.IoPort // 6510 processor port ($0000/$0001)
	CasRead *bus.Pin    // cassette read line into CIA1 FLAG

	Timing *Timing

	// Interrupt lines
	irqLine bool
	nmiLine bool
}

func NewC64() *C64 {
	cpuPort := bus.NewIoPort(memory.PortDefaultDirection, memory.PortDefaultOutput)
	casRead := bus.NewPin()

	return &C64{
		Memory:  memory.NewManager(cpuPort),
		VIC:     vic.NewVIC(),
		SID:     sid.NewSID(),
		CIA1:    cia.NewCIA(),
		CIA2:    cia.NewCIA(),
		Tape:    device.NewDatassette(casRead, cpuPort),
		CPUPort: cpuPort,
		CasRead: casRead,
		Timing:  NewTiming(true),
	}
}

// Cycle advances the whole machine by one cycle and reports whether a
// frame completed.
func (c *C64) Cycle() bool {
	newLine, frameComplete := c.Timing.Step()
	if newLine {
		c.VIC.SetRasterLine(uint16(c.Timing.CurrentLine()))
	}

	c.Tape.Clock()
	c.CIA1.SetFlagLine(c.CasRead.Active())

	if event := c.CIA1.Update(1); event.IRQ {
		c.irqLine = true
	}
	if event := c.CIA2.Update(1); event.NMI {
		c.nmiLine = true
	}

	if c.VIC.IRQ() {
		c.irqLine = true
	}

	return frameComplete
}

// CycleFrame runs the machine to the end of the current frame.
func (c *C64) CycleFrame() {
	for !c.Cycle() {
	}
}

// IRQ reports and clears the pending interrupt line; the absent CPU
// would have serviced it.
func (c *C64) IRQ() bool {
	pending := c.irqLine
	c.irqLine = false
	return pending
}

func (c *C64) NMI() bool {
	pending := c.nmiLine
	c.nmiLine = false
	return pending
}

// ReadBus performs a CPU-visible read, dispatching I/O addresses to the
// chips when the I/O area is banked in.
func (c *C64) ReadBus(address uint16) uint8 {
	if address >= memory.IO_START && address <= memory.IO_END && c.Memory.Config().CHAREN {
		return c.readIO(address)
	}
	return c.Memory.Read(address)
}

// WriteBus performs a CPU-visible write.
func (c *C64) WriteBus(address uint16, value uint8) {
	if address >= memory.IO_START && address <= memory.IO_END && c.Memory.Config().CHAREN {
		c.writeIO(address, value)
		return
	}
	c.Memory.Write(address, value)
}

// The VIC appears every 64 bytes in $D000-$D3FF, the SID every 32 in
// $D400-$D7FF and the CIAs every 16 bytes of their pages.
func (c *C64) readIO(address uint16) uint8 {
	switch {
	case address <= VIC_END:
		return c.VIC.ReadRegister(uint8(address & 0x3F))
	case address <= SID_END:
		return c.SID.ReadRegister(uint8(address & 0x1F))
	case address <= COLOR_RAM_END:
		// Color RAM is 4 bits wide; the upper nibble floats high.
		return c.Memory.ReadIO(address-memory.IO_START) | 0xF0
	case address <= CIA1_END:
		return c.CIA1.ReadRegister(uint8(address & 0x0F))
	case address <= CIA2_END:
		return c.CIA2.ReadRegister(uint8(address & 0x0F))
	default:
		// Expansion I/O ($DE00-$DFFF) is open bus.
		return 0xFF
	}
}

func (c *C64) writeIO(address uint16, value uint8) {
	switch {
	case address <= VIC_END:
		c.VIC.WriteRegister(uint8(address&0x3F), value)
	case address <= SID_END:
		c.SID.WriteRegister(uint8(address&0x1F), value)
	case address <= COLOR_RAM_END:
		c.Memory.WriteIO(address-memory.IO_START, value&0x0F)
	case address <= CIA1_END:
		c.CIA1.WriteRegister(uint8(address&0x0F), value)
	case address <= CIA2_END:
		c.CIA2.WriteRegister(uint8(address&0x0F), value)
	}
}
