package cia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagFallingEdge(t *testing.T) {
	assert := assert.New(t)

	cia := NewCIA()
	cia.WriteRegister(ICR, ICR_SET|ICR_FLAG)

	// Rising edge: no interrupt.
	cia.SetFlagLine(true)
	assert.Equal(uint8(0), cia.registers.icrData&ICR_FLAG)

	// Falling edge latches the FLAG interrupt.
	cia.SetFlagLine(false)
	assert.Equal(ICR_FLAG, cia.registers.icrData&ICR_FLAG)

	event := cia.Update(1)
	assert.True(event.IRQ, "Enabled FLAG interrupt raises IRQ")

	icr := cia.ReadRegister(ICR)
	assert.Equal(uint8(0x80|ICR_FLAG), icr)
	assert.False(cia.IsIRQActive(), "ICR read acknowledges the interrupt")
}

func TestFlagLevelHoldIsNotAnEdge(t *testing.T) {
	assert := assert.New(t)

	cia := NewCIA()
	cia.WriteRegister(ICR, ICR_SET|ICR_FLAG)

	// Holding the line low cycle after cycle must latch nothing; the
	// datassette re-drives the same level for every cycle of a pulse
	// phase.
	for i := 0; i < 10; i++ {
		cia.SetFlagLine(false)
	}
	assert.Equal(uint8(0), cia.registers.icrData&ICR_FLAG)

	cia.SetFlagLine(true)
	for i := 0; i < 10; i++ {
		cia.SetFlagLine(true)
	}
	assert.Equal(uint8(0), cia.registers.icrData&ICR_FLAG)
}

func TestFlagMasked(t *testing.T) {
	assert := assert.New(t)

	cia := NewCIA()

	cia.SetFlagLine(true)
	cia.SetFlagLine(false)

	event := cia.Update(1)
	assert.False(event.IRQ, "Masked FLAG edge raises no IRQ")
	assert.Equal(uint8(0), cia.ReadRegister(ICR))
}
