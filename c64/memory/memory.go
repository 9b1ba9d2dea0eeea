package memory

import (
	"fmt"

	"github.com/wberndt/c64/c64/bus"
)

const (
	// Memory regions
	BASIC_ROM_START  = 0xA000
	BASIC_ROM_END    = 0xBFFF
	IO_START         = 0xD000
	IO_END           = 0xDFFF
	KERNAL_ROM_START = 0xE000
	KERNAL_ROM_END   = 0xFFFF

	// 6510 processor port
	PORT_DDR  = 0x0000
	PORT_DATA = 0x0001
)

// Processor port reset values: bits 0-3 and 5 outputs, bit 4 (cassette
// switch sense) input; LORAM/HIRAM/CHAREN high, motor off.
const (
	PortDefaultDirection = 0x2F
	PortDefaultOutput    = 0x37
)

// MemoryConfig represents different memory configurations based on the
// processor port control lines.
type MemoryConfig struct {
	LORAM  bool // BASIC ROM visible
	HIRAM  bool // KERNAL ROM visible
	CHAREN bool // I/O area visible (true) or Character ROM visible (false)
}

type Manager struct {
	ram    [65536]uint8
	basic  [8192]uint8 // 8K BASIC ROM
	kernal [8192]uint8 // 8K KERNAL ROM
	char   [4096]uint8 // 4K Character ROM
	io     [4096]uint8 // 4K I/O area

	// The processor port lives at $0000/$0001. The manager borrows it;
	// the datassette senses and drives lines on the same wire.
	port   *bus.IoPort
	config MemoryConfig
}

func NewManager(port *bus.IoPort) *Manager {
	m := &Manager{port: port}
	m.updateMemoryConfig()
	return m
}

// Port exposes the processor port wire for peer chips.
func (m *Manager) Port() *bus.IoPort {
	return m.port
}

// LoadROM loads ROM data into the specified ROM area
func (m *Manager) LoadROM(data []uint8, romType string) error {
	switch romType {
	case "basic":
		if len(data) != 8192 {
			return fmt.Errorf("BASIC ROM must be 8K, got %d bytes", len(data))
		}
		copy(m.basic[:], data)
	case "kernal":
		if len(data) != 8192 {
			return fmt.Errorf("KERNAL ROM must be 8K, got %d bytes", len(data))
		}
		copy(m.kernal[:], data)
	case "char":
		if len(data) != 4096 {
			return fmt.Errorf("Character ROM must be 4K, got %d bytes", len(data))
		}
		copy(m.char[:], data)
	default:
		return fmt.Errorf("unknown ROM type: %s", romType)
	}
	return nil
}

// Read handles memory reads with banking
func (m *Manager) Read(address uint16) uint8 {
	switch {
	case address == PORT_DDR:
		return m.port.Direction()
	case address == PORT_DATA:
		return m.port.Value()
	case address >= BASIC_ROM_START && address <= BASIC_ROM_END:
		if m.config.LORAM {
			return m.basic[address-BASIC_ROM_START]
		}
		return m.ram[address]
	case address >= IO_START && address <= IO_END:
		if m.config.CHAREN {
			return m.io[address-IO_START]
		}
		return m.char[address-IO_START]
	case address >= KERNAL_ROM_START && address <= KERNAL_ROM_END:
		if m.config.HIRAM {
			return m.kernal[address-KERNAL_ROM_START]
		}
		return m.ram[address]
	default:
		return m.ram[address]
	}
}

// Write handles memory writes with banking
func (m *Manager) Write(address uint16, value uint8) {
	switch {
	case address == PORT_DDR:
		m.port.SetDirection(value)
		m.updateMemoryConfig()
	case address == PORT_DATA:
		m.port.SetOutput(value)
		m.updateMemoryConfig()
	case address >= BASIC_ROM_START && address <= BASIC_ROM_END:
		// Can always write to RAM under ROM
		m.ram[address] = value
	case address >= IO_START && address <= IO_END:
		if m.config.CHAREN {
			m.io[address-IO_START] = value
		} else {
			// Can write to RAM under Character ROM
			m.ram[address] = value
		}
	case address >= KERNAL_ROM_START && address <= KERNAL_ROM_END:
		m.ram[address] = value
	default:
		m.ram[address] = value
	}
}

// updateMemoryConfig decodes the banking lines from the port's
// observable value. Bit 0: LORAM, bit 1: HIRAM, bit 2: CHAREN.
func (m *Manager) updateMemoryConfig() {
	value := m.port.Value()
	m.config = MemoryConfig{
		LORAM:  value&0x01 != 0,
		HIRAM:  value&0x02 != 0,
		CHAREN: value&0x04 != 0,
	}
}

// Config reports the current banking configuration.
func (m *Manager) Config() MemoryConfig {
	return m.config
}

// WriteIO allows other components (VIC, SID, CIA) to write directly to I/O space
func (m *Manager) WriteIO(offset uint16, value uint8) {
	if offset < 4096 {
		m.io[offset] = value
	}
}

// ReadIO allows other components to read directly from I/O space
func (m *Manager) ReadIO(offset uint16) uint8 {
	if offset < 4096 {
		return m.io[offset]
	}
	return 0
}

// ReadChar fetches from the character generator ROM regardless of the
// banking configuration, the way the VIC sees it in bank 0.
func (m *Manager) ReadChar(offset uint16) uint8 {
	return m.char[offset&0x0FFF]
}

// DumpMemory dumps a region of memory for debugging
func (m *Manager) DumpMemory(start uint16, length uint16) []uint8 {
	dump := make([]uint8, length)
	for i := uint16(0); i < length; i++ {
		dump[i] = m.Read(start + i)
	}
	return dump
}

func (m *Manager) DMA(address uint16, data []uint8) {
	for i, value := range data {
		m.Write(address+uint16(i), value)
	}
}
