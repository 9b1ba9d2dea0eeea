package device

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPulseZeroLength(t *testing.T) {
	assert := assert.New(t)

	pulse := NewPulse(0, 50)
	assert.True(pulse.IsDone(), "Zero-length pulse should start done")
}

func TestPulseSquareWave(t *testing.T) {
	type testCase struct {
		name     string
		length   uint32
		duty     uint32
		expected []bool // level per cycle, false = low
	}

	testCases := []testCase{
		{
			name:     "Even length, 50% duty",
			length:   8,
			duty:     50,
			expected: []bool{false, false, false, false, true, true, true, true},
		},
		{
			name:     "Odd length, 50% duty",
			length:   5,
			duty:     50,
			expected: []bool{false, false, true, true, true},
		},
		{
			name:     "100% duty never drops low",
			length:   3,
			duty:     100,
			expected: []bool{true, true, true},
		},
		{
			name:     "0% duty stays low",
			length:   3,
			duty:     0,
			expected: []bool{false, false, false},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			pulse := NewPulse(tc.length, tc.duty)
			for i, level := range tc.expected {
				assert.False(pulse.IsDone(), fmt.Sprintf("Pulse done early at cycle %d", i))
				assert.Equal(level, pulse.Advance(), fmt.Sprintf("Wrong level at cycle %d", i))
			}
			assert.True(pulse.IsDone(), "Pulse should be done after length cycles")
		})
	}
}

func TestPulseLowCycleCount(t *testing.T) {
	// For any length >= 2 at 50% duty, exactly floor(length/2) cycles
	// come out low.
	for length := uint32(2); length <= 64; length++ {
		pulse := NewPulse(length, 50)

		low := 0
		for !pulse.IsDone() {
			if !pulse.Advance() {
				low++
			}
		}
		assert.Equal(t, int(length/2), low, fmt.Sprintf("Low cycle count wrong for length %d", length))
	}
}
