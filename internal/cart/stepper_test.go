package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepperStaysInRange(t *testing.T) {
	for max := 1; max <= 6; max++ {
		s := Stepper{Max: max}
		for start := 1; start <= max; start++ {
			up := s.Increment(start)
			down := s.Decrement(start)
			assert.GreaterOrEqual(t, up, 1)
			assert.LessOrEqual(t, up, max)
			assert.GreaterOrEqual(t, down, 1)
			assert.LessOrEqual(t, down, max)
		}
	}
}

func TestStepperBounds(t *testing.T) {
	s := Stepper{Max: 5}

	assert.False(t, s.CanDecrement(1))
	assert.Equal(t, 1, s.Decrement(1))

	assert.False(t, s.CanIncrement(5))
	assert.Equal(t, 5, s.Increment(5))

	assert.True(t, s.CanIncrement(4))
	assert.Equal(t, 5, s.Increment(4))
	assert.Equal(t, 3, s.Decrement(4))
}
