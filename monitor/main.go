package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wberndt/c64/c64/c64"
	"github.com/wberndt/c64/c64/device"
	"github.com/wberndt/c64/c64/vic"
)

// Add tick command for free-running the machine
type frameTick struct{}

func doFrame() tea.Cmd {
	return tea.Tick(20*time.Millisecond, func(t time.Time) tea.Msg {
		return frameTick{}
	})
}

// Monitor represents the UI state
type Monitor struct {
	computer *c64.C64
	tape     *device.PulseTape
	paused   bool
	width    int
	height   int

	lastRegs   [0x2F]uint8 // Previous VIC register snapshot for change detection
	lastMemory [64]uint8   // Only track visible memory (8 rows * 8 bytes)

	memoryAddress uint16 // Start address for memory view
	gotoInput     textinput.Model
	showingGoto   bool
}

// Define some basic styles
var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	changed   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1)

	vicStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1).
			Width(58)

	changedStyle = lipgloss.NewStyle().
			Foreground(changed).
			Bold(true)

	tapeStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(40)

	memoryStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1).
			Width(50)
)

// demoTape builds a leader of short pulses followed by alternating
// short/medium data pulses, enough to watch the deck run for a while.
func demoTape() *device.PulseTape {
	pulses := make([]uint32, 0, 8192)
	for i := 0; i < 4096; i++ {
		pulses = append(pulses, 352)
	}
	for i := 0; i < 2048; i++ {
		pulses = append(pulses, 352, 512)
	}
	return device.NewPulseTape(pulses)
}

// Initialize the monitor
func NewMonitor(computer *c64.C64, tape *device.PulseTape) *Monitor {
	ti := textinput.New()
	ti.Placeholder = "Enter hex address (e.g. D000)"
	ti.CharLimit = 4
	ti.Width = 6

	m := &Monitor{
		computer:      computer,
		tape:          tape,
		paused:        true,
		memoryAddress: 0x0400,
		gotoInput:     ti,
	}
	m.captureState()
	return m
}

// Capture the register and memory snapshots used for change
// highlighting.
func (m *Monitor) captureState() {
	for reg := range m.lastRegs {
		m.lastRegs[reg] = m.computer.ReadBus(vic.VICBase + uint16(reg))
	}
	addr := m.memoryAddress
	for i := 0; i < 64; i++ {
		m.lastMemory[i] = m.computer.ReadBus(addr + uint16(i))
	}
}

// Format memory panel content with change highlighting
func (m Monitor) formatMemory() string {
	var result strings.Builder
	addr := m.memoryAddress

	for row := 0; row < 8; row++ {
		result.WriteString(fmt.Sprintf("$%04X: ", addr))

		for col := 0; col < 8; col++ {
			offset := row*8 + col
			value := m.computer.ReadBus(addr + uint16(col))
			lastValue := m.lastMemory[offset]

			if value != lastValue {
				result.WriteString(changedStyle.Render(fmt.Sprintf("%02X ", value)))
			} else {
				result.WriteString(fmt.Sprintf("%02X ", value))
			}
		}

		result.WriteString(" | ")
		for col := 0; col < 8; col++ {
			value := m.computer.ReadBus(addr + uint16(col))
			if value >= 32 && value <= 126 {
				result.WriteString(string(value))
			} else {
				result.WriteString(".")
			}
		}

		result.WriteString("\n")
		addr += 8
	}

	return result.String()
}

// Format the VIC register pane: the 47 live registers as a hexdump
// with decoded highlights below.
func (m Monitor) formatVIC() string {
	var result strings.Builder

	for base := 0; base < 0x2F; base += 8 {
		result.WriteString(fmt.Sprintf("$D0%02X: ", base))
		for off := 0; off < 8 && base+off < 0x2F; off++ {
			reg := base + off
			value := m.computer.ReadBus(vic.VICBase + uint16(reg))
			if value != m.lastRegs[reg] {
				result.WriteString(changedStyle.Render(fmt.Sprintf("%02X ", value)))
			} else {
				result.WriteString(fmt.Sprintf("%02X ", value))
			}
		}
		result.WriteString("\n")
	}

	v := m.computer.VIC
	result.WriteString(fmt.Sprintf("\nmode: %s", v.Mode()))
	result.WriteString(fmt.Sprintf("\nraster: %3d  compare: %3d", v.Raster(), v.RasterCompare()))
	result.WriteString(fmt.Sprintf("\nmatrix: $%04X  chars: $%04X", v.VideoMatrix(), v.CharBase()))
	result.WriteString(fmt.Sprintf("\nborder: %X  background: %X", v.BorderColor(), v.BackgroundColor(0)))

	return result.String()
}

// Format the datassette pane: deck state plus the wires it hangs off.
func (m Monitor) formatTape() string {
	var result strings.Builder

	port := m.computer.CPUPort.Value()
	motor := port&(1<<device.CassetteMotor) == 0
	sense := port&(1<<device.CassetteSwitch) == 0

	result.WriteString(fmt.Sprintf("position: %d/%d\n", m.tape.Pos(), m.tape.Len()))
	result.WriteString(fmt.Sprintf("playing:  %v\n", m.computer.Tape.IsPlaying()))
	result.WriteString(fmt.Sprintf("motor:    %v\n", motor))
	result.WriteString(fmt.Sprintf("sense:    %v (button %s)\n", sense, buttonState(sense)))
	result.WriteString(fmt.Sprintf("flag pin: %v\n", m.computer.CasRead.Active()))
	result.WriteString(fmt.Sprintf("\ncycle: %d  frame: %d  line: %d",
		m.computer.Timing.CurrentCycle(),
		m.computer.Timing.FrameCount(),
		m.computer.Timing.CurrentLine()))

	return result.String()
}

func buttonState(down bool) string {
	if down {
		return "down"
	}
	return "up"
}

// Implementation of tea.Model interface
func (m Monitor) Init() tea.Cmd {
	return nil
}

// Handle keyboard input
func (m Monitor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameTick:
		if m.paused {
			return m, nil
		}
		m.captureState()
		m.computer.CycleFrame()
		return m, doFrame()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if m.showingGoto {
			switch msg.Type {
			case tea.KeyEnter:
				if addr, err := strconv.ParseUint(m.gotoInput.Value(), 16, 16); err == nil {
					m.memoryAddress = uint16(addr)
					m.captureState()
				}
				m.showingGoto = false
				return m, nil
			case tea.KeyEsc:
				m.showingGoto = false
				return m, nil
			}
			var cmd tea.Cmd
			m.gotoInput, cmd = m.gotoInput.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "g":
			m.showingGoto = true
			m.gotoInput.Focus()
			return m, textinput.Blink
		case "q", "ctrl+c":
			return m, tea.Quit
		case "c":
			// Single cycle
			if m.paused {
				m.captureState()
				m.computer.Cycle()
			}
		case "f":
			// Single frame
			if m.paused {
				m.captureState()
				m.computer.CycleFrame()
			}
		case "p":
			m.paused = !m.paused
			if !m.paused {
				return m, doFrame()
			}
		case "t":
			// Toggle play/stop on the deck; switch sense low means the
			// play button is down.
			if !m.computer.CPUPort.Bit(device.CassetteSwitch) {
				m.computer.Tape.Stop()
			} else {
				m.computer.Tape.Play()
			}
		case "r":
			m.computer.Tape.Reset()
		case "m":
			// Toggle the motor line in the processor port
			m.computer.WriteBus(0x0001, m.computer.CPUPort.Value()^(1<<device.CassetteMotor))

		case "up":
			if m.memoryAddress >= 8 {
				m.memoryAddress -= 8
				m.captureState()
			}
		case "down":
			if m.memoryAddress <= 0xFFF8 {
				m.memoryAddress += 8
				m.captureState()
			}
		case "pgup":
			if m.memoryAddress >= 64 {
				m.memoryAddress -= 64
			} else {
				m.memoryAddress = 0
			}
			m.captureState()
		case "pgdown":
			if m.memoryAddress <= 0xFFC0 {
				m.memoryAddress += 64
			} else {
				m.memoryAddress = 0xFFC0
			}
			m.captureState()
		}
	}
	return m, nil
}

func (m Monitor) View() string {
	vicPane := vicStyle.Render(fmt.Sprintf(
		"VIC-II\n\n%s",
		m.formatVIC(),
	))

	tapePane := tapeStyle.Render(fmt.Sprintf(
		"Datassette\n\n%s",
		m.formatTape(),
	))

	memory := memoryStyle.Render(fmt.Sprintf(
		"Memory (↑↓ to scroll)\n\n%s",
		m.formatMemory(),
	))

	right := lipgloss.JoinVertical(
		lipgloss.Left,
		tapePane,
		memory,
	)

	var help string
	if !m.paused {
		help = titleStyle.Render(
			"p: pause • q: quit",
		)
	} else {
		help = titleStyle.Render(
			"c: cycle • f: frame • p: run/pause • t: play/stop tape • r: rewind • " +
				"m: motor • ↑↓: scroll • g: goto • q: quit",
		)
	}

	content := lipgloss.JoinHorizontal(
		lipgloss.Top,
		vicPane,
		lipgloss.PlaceHorizontal(3, lipgloss.Left, right),
	)

	if m.showingGoto {
		dialog := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1).
			Width(30).
			Render(
				"Go to address:\n\n" +
					m.gotoInput.View(),
			)

		return lipgloss.JoinVertical(
			lipgloss.Center,
			content,
			help,
			dialog,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		help,
	)
}

func main() {
	computer := c64.NewC64()
	tape := demoTape()
	computer.Tape.Attach(tape)

	p := tea.NewProgram(NewMonitor(computer, tape))
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
	}
}
