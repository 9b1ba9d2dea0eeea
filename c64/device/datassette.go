package device

import (
	"log"

	"github.com/wberndt/c64/c64/bus"
)

// Processor port lines the datassette is wired to. Bits 0-2 are the
// banking lines (LORAM/HIRAM/CHAREN) and bit 3 the cassette write line;
// none of those are sensed here.
const (
	CassetteSwitch = 4 // switch sense, input to the CPU (0 = play button down)
	CassetteMotor  = 5 // motor control, output from the CPU (0 = motor spins)
)

// The cassette read line carries a square wave with a fixed duty cycle.
const dutyCycle = 50

// Pulse counts down one tape pulse. Advance reports the level the flag
// line is driven to for that cycle: low for the opening lowCycles, high
// for the remainder.
type Pulse struct {
	lowCycles uint32
	remaining uint32
}

func NewPulse(length, duty uint32) Pulse {
	return Pulse{
		lowCycles: length * (100 - duty) / 100,
		remaining: length,
	}
}

func (p *Pulse) IsDone() bool {
	return p.remaining == 0
}

// Advance must only be called while the pulse is not done.
func (p *Pulse) Advance() bool {
	p.remaining--
	if p.lowCycles == 0 {
		return true
	}
	p.lowCycles--
	return false
}

// Datassette drives the CIA1 FLAG line from an attached tape, one CPU
// cycle at a time. It borrows the flag pin and the processor port; the
// machine owns both.
type Datassette struct {
	ciaFlag *bus.Pin
	cpuPort *bus.IoPort

	playing bool
	tape    Tape
	pulse   Pulse
}

func NewDatassette(ciaFlag *bus.Pin, cpuPort *bus.IoPort) *Datassette {
	return &Datassette{
		ciaFlag: ciaFlag,
		cpuPort: cpuPort,
		pulse:   NewPulse(0, dutyCycle),
	}
}

// Attach installs a tape. Playback does not start until Play.
func (d *Datassette) Attach(tape Tape) {
	d.tape = tape
}

func (d *Datassette) Detach() {
	d.Stop()
	d.tape = nil
}

// IsPlaying reports whether the tape is actually advancing: the play
// button must be down and the motor line low (0 = motor spins).
func (d *Datassette) IsPlaying() bool {
	motorOn := d.cpuPort.Value()&(1<<CassetteMotor) == 0
	return d.playing && motorOn
}

// Play presses the play button. With no tape attached this is a no-op.
func (d *Datassette) Play() {
	if d.tape == nil {
		return
	}
	log.Printf("datassette: play")
	d.cpuPort.SetInputBit(CassetteSwitch, false)
	d.playing = true
}

func (d *Datassette) Stop() {
	log.Printf("datassette: stop")
	d.cpuPort.SetInputBit(CassetteSwitch, true)
	d.playing = false
}

// Reset stops playback, rewinds the tape and discards any in-flight
// pulse.
func (d *Datassette) Reset() {
	d.Stop()
	d.pulse = NewPulse(0, dutyCycle)
	if d.tape != nil {
		d.tape.Seek(0)
	}
}

// Clock advances the datassette by one CPU cycle. While the motor line
// is high the current pulse freezes in place; end of tape stops the
// deck.
func (d *Datassette) Clock() {
	if !d.IsPlaying() || d.tape == nil {
		return
	}
	if d.pulse.IsDone() {
		length, ok := d.tape.ReadPulse()
		if !ok {
			d.Stop()
			return
		}
		d.pulse = NewPulse(length, dutyCycle)
	}
	if !d.pulse.IsDone() {
		d.ciaFlag.SetActive(d.pulse.Advance())
	}
}
