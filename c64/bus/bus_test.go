package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPinLevels(t *testing.T) {
	assert := assert.New(t)

	pin := NewPin()
	assert.False(pin.Active(), "Pin should start low")

	pin.SetActive(true)
	assert.True(pin.Active())

	pin.SetActive(false)
	assert.False(pin.Active())
}

func TestIoPortValueFusion(t *testing.T) {
	type testCase struct {
		name      string
		direction uint8
		output    uint8
		input     uint8
		expected  uint8
	}

	testCases := []testCase{
		{
			name:      "All outputs",
			direction: 0xFF,
			output:    0x5A,
			input:     0x00,
			expected:  0x5A,
		},
		{
			name:      "All inputs",
			direction: 0x00,
			output:    0x5A,
			input:     0xA5,
			expected:  0xA5,
		},
		{
			name:      "Processor port mix",
			direction: 0x2F, // bit 4 input, bits 0-3 and 5 outputs
			output:    0x37,
			input:     0xFF,
			expected:  0x37 | 0xD0,
		},
		{
			name:      "Input bits masked out of output latch",
			direction: 0x0F,
			output:    0xFF,
			input:     0x00,
			expected:  0x0F,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			port := NewIoPort(tc.direction, tc.output)
			for bit := uint8(0); bit < 8; bit++ {
				port.SetInputBit(bit, tc.input&(1<<bit) != 0)
			}

			assert.Equal(tc.expected, port.Value())
		})
	}
}

func TestIoPortInputLinesStartHigh(t *testing.T) {
	assert := assert.New(t)

	port := NewIoPort(0x2F, 0x37)
	assert.True(port.Bit(4), "Unconnected input line should read high")
}

func TestIoPortSetInputBit(t *testing.T) {
	assert := assert.New(t)

	port := NewIoPort(0x2F, 0x37)

	// Cassette switch sense on bit 4: the datassette pulls it low while
	// the play button is down. Bits 6-7 are unconnected inputs and stay
	// high.
	port.SetInputBit(4, false)
	assert.False(port.Bit(4))
	assert.Equal(uint8(0xE7), port.Value())

	port.SetInputBit(4, true)
	assert.True(port.Bit(4))
	assert.Equal(uint8(0xF7), port.Value())
}

func TestIoPortDirectionChange(t *testing.T) {
	assert := assert.New(t)

	port := NewIoPort(0x00, 0xAA)
	assert.Equal(uint8(0xFF), port.Value(), "All-input port shows input lines")

	// Output latch becomes visible once the direction flips.
	port.SetDirection(0xFF)
	assert.Equal(uint8(0xAA), port.Value())
}

func TestIoPortOutputLatchedWhileInput(t *testing.T) {
	assert := assert.New(t)

	port := NewIoPort(0x00, 0x00)
	port.SetOutput(0x21)
	assert.Equal(uint8(0xFF), port.Value())

	port.SetDirection(0x21)
	assert.Equal(uint8(0xFF), port.Value(), "Latched output bits surface on direction change")
}
