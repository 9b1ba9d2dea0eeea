package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wberndt/c64/c64/bus"
)

func newManager() *Manager {
	return NewManager(bus.NewIoPort(PortDefaultDirection, PortDefaultOutput))
}

func TestProcessorPortMapped(t *testing.T) {
	assert := assert.New(t)

	m := newManager()
	assert.Equal(uint8(0x2F), m.Read(PORT_DDR))
	// Bit 4 is an input line and idles high alongside the other
	// unconnected inputs.
	assert.Equal(uint8(0xF7), m.Read(PORT_DATA))
}

func TestProcessorPortWrite(t *testing.T) {
	assert := assert.New(t)

	m := newManager()
	m.Write(PORT_DATA, 0x31) // LORAM high, HIRAM and CHAREN low
	assert.Equal(uint8(0x31)|0xD0, m.Read(PORT_DATA))

	config := m.Config()
	assert.True(config.LORAM)
	assert.False(config.CHAREN)
}

func TestProcessorPortPeerLines(t *testing.T) {
	assert := assert.New(t)

	m := newManager()

	// The datassette pulling switch sense low shows up at $0001
	// without any memory write.
	m.Port().SetInputBit(4, false)
	assert.Equal(uint8(0), m.Read(PORT_DATA)&0x10)

	m.Port().SetInputBit(4, true)
	assert.Equal(uint8(0x10), m.Read(PORT_DATA)&0x10)
}

func TestBankingBasicROM(t *testing.T) {
	type testCase struct {
		name    string
		port    uint8
		fromROM bool
	}

	testCases := []testCase{
		{name: "LORAM high maps BASIC", port: 0x37, fromROM: true},
		{name: "LORAM low maps RAM", port: 0x36, fromROM: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			m := newManager()
			rom := make([]uint8, 8192)
			rom[0] = 0x94
			assert.NoError(m.LoadROM(rom, "basic"))
			m.Write(BASIC_ROM_START, 0x42) // lands in RAM under the ROM

			m.Write(PORT_DATA, tc.port)
			if tc.fromROM {
				assert.Equal(uint8(0x94), m.Read(BASIC_ROM_START))
			} else {
				assert.Equal(uint8(0x42), m.Read(BASIC_ROM_START))
			}
		})
	}
}

func TestBankingCharenSelectsIO(t *testing.T) {
	assert := assert.New(t)

	m := newManager()
	charROM := make([]uint8, 4096)
	charROM[5] = 0x3C
	assert.NoError(m.LoadROM(charROM, "char"))
	m.WriteIO(5, 0x77)

	// CHAREN high: I/O area visible.
	m.Write(PORT_DATA, 0x37)
	assert.Equal(uint8(0x77), m.Read(IO_START+5))

	// CHAREN low: character ROM visible, writes fall through to RAM.
	m.Write(PORT_DATA, 0x33)
	assert.Equal(uint8(0x3C), m.Read(IO_START+5))
	m.Write(IO_START+5, 0x11)
	assert.Equal(uint8(0x3C), m.Read(IO_START+5), "ROM stays visible after RAM write")
	assert.Equal(uint8(0x77), m.ReadIO(5), "I/O contents untouched")
}

func TestKernalBanking(t *testing.T) {
	assert := assert.New(t)

	m := newManager()
	rom := make([]uint8, 8192)
	rom[0x1FFC] = 0xE2
	assert.NoError(m.LoadROM(rom, "kernal"))

	assert.Equal(uint8(0xE2), m.Read(0xFFFC))

	m.Write(PORT_DATA, 0x35&^uint8(0x02)) // HIRAM low
	m.Write(0xFFFC, 0x09)
	assert.Equal(uint8(0x09), m.Read(0xFFFC))
}

func TestLoadROMSizeChecks(t *testing.T) {
	assert := assert.New(t)

	m := newManager()
	assert.Error(m.LoadROM(make([]uint8, 100), "basic"))
	assert.Error(m.LoadROM(make([]uint8, 8192), "char"))
	assert.Error(m.LoadROM(make([]uint8, 8192), "rom"))
}

func TestReadChar(t *testing.T) {
	assert := assert.New(t)

	m := newManager()
	charROM := make([]uint8, 4096)
	charROM[8*8+2] = 0xAA
	assert.NoError(m.LoadROM(charROM, "char"))

	assert.Equal(uint8(0xAA), m.ReadChar(8*8+2))
}

func TestDMA(t *testing.T) {
	assert := assert.New(t)

	m := newManager()
	m.DMA(0x0400, []uint8{1, 2, 3})
	assert.Equal([]uint8{1, 2, 3}, m.DumpMemory(0x0400, 3))
}
