package main

import (
	"flag"
	"log"
	"os"

	"github.com/wberndt/c64/c64/c64"
	"github.com/wberndt/c64/c64/device"
)

func loadROM(computer *c64.C64, path, romType string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return computer.Memory.LoadROM(data, romType)
}

// demoTape builds a pulse stream resembling a tape leader: a run of
// short pulses followed by alternating short/medium ones.
func demoTape() *device.PulseTape {
	pulses := make([]uint32, 0, 4096)
	for i := 0; i < 2048; i++ {
		pulses = append(pulses, 352)
	}
	for i := 0; i < 1024; i++ {
		pulses = append(pulses, 352, 512)
	}
	return device.NewPulseTape(pulses)
}

func main() {
	basicPath := flag.String("basic", "basic-901226-01.bin", "BASIC ROM image")
	kernalPath := flag.String("kernal", "kernal-901227-03.bin", "KERNAL ROM image")
	charPath := flag.String("char", "chargen-901225-01.bin", "Character ROM image")
	playTape := flag.Bool("tape", false, "Attach a demo tape and press play")
	flag.Parse()

	computer := c64.NewC64()

	do := func() error {
		if err := loadROM(computer, *basicPath, "basic"); err != nil {
			return err
		}
		if err := loadROM(computer, *kernalPath, "kernal"); err != nil {
			return err
		}
		if err := loadROM(computer, *charPath, "char"); err != nil {
			return err
		}

		if *playTape {
			computer.Tape.Attach(demoTape())
			computer.Tape.Play()
			// Spin the motor up; there is no CPU to do it for us.
			computer.WriteBus(0x0001, 0x17)
		}

		display, err := c64.NewDisplay()
		if err != nil {
			return err
		}
		defer display.Cleanup()

		frame := make([]uint8, c64.DISPLAY_WIDTH*c64.DISPLAY_HEIGHT)
		for !display.PollQuit() {
			computer.CycleFrame()
			computer.RenderTextFrame(frame)
			if err := display.Render(frame); err != nil {
				return err
			}
		}
		return nil
	}
	if err := do(); err != nil {
		log.Fatal(err)
	}
}
