package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimer_AccumulatedSteps(t *testing.T) {
	left, elapsed := 5.0, 0.0
	for range 150 {
		left -= 1.0 / 30
		elapsed += 1.0 / 30
	}

	assert.True(t, TimerElapsed(left))
	assert.True(t, TimerReached(elapsed, 5.0))

	assert.False(t, TimerElapsed(1.0/30))
	assert.False(t, TimerReached(5.0-1.0/30, 5.0))
	assert.True(t, TimerElapsed(-0.01))
	assert.True(t, TimerReached(0, 0))
}
