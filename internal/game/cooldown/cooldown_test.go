package cooldown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 0.1

func advance(p *Provider, seconds float64) {
	for range int(seconds/tick + 0.5) {
		p.Tick(tick)
	}
}

func TestProvider_Lifecycle(t *testing.T) {
	p := NewProvider()

	p.StartCooldown(1, "fireball", 5.0)
	assert.True(t, p.IsOnCooldown(1, "fireball"))
	assert.InDelta(t, 5.0, p.Remaining(1, "fireball"), 1e-9)

	advance(p, 4.9)
	assert.True(t, p.IsOnCooldown(1, "fireball"))

	advance(p, 0.2)
	assert.False(t, p.IsOnCooldown(1, "fireball"))
	assert.Zero(t, p.Len(), "elapsed entries are deleted")
}

func TestProvider_ExpiresOnExactTick(t *testing.T) {
	tests := []struct {
		name      string
		dt        float64
		duration  float64
		expiresAt int
	}{
		{name: "30 Hz", dt: 1.0 / 30, duration: 5.0, expiresAt: 150},
		{name: "60 Hz", dt: 1.0 / 60, duration: 5.0, expiresAt: 300},
		{name: "20 Hz", dt: 1.0 / 20, duration: 5.0, expiresAt: 100},
		{name: "30 Hz fractional", dt: 1.0 / 30, duration: 0.7, expiresAt: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider()
			p.StartCooldown(1, "fireball", tt.duration)

			for range tt.expiresAt - 1 {
				p.Tick(tt.dt)
			}
			require.True(t, p.IsOnCooldown(1, "fireball"), "one tick short of the duration")

			p.Tick(tt.dt)
			assert.False(t, p.IsOnCooldown(1, "fireball"))
			assert.Zero(t, p.Remaining(1, "fireball"))
			assert.Zero(t, p.Len())
		})
	}
}

func TestProvider_Independence(t *testing.T) {
	p := NewProvider()

	p.StartCooldown(1, "fireball", 5.0)

	assert.False(t, p.IsOnCooldown(1, "dash"), "other action")
	assert.False(t, p.IsOnCooldown(2, "fireball"), "other owner")

	p.StartCooldown(2, "fireball", 1.0)
	advance(p, 1.1)
	assert.False(t, p.IsOnCooldown(2, "fireball"))
	assert.True(t, p.IsOnCooldown(1, "fireball"))
}

func TestProvider_NonPositiveDuration(t *testing.T) {
	p := NewProvider()

	p.StartCooldown(1, "jab", 0)
	assert.False(t, p.IsOnCooldown(1, "jab"))

	p.StartCooldown(1, "jab", 3)
	p.StartCooldown(1, "jab", -1)
	assert.False(t, p.IsOnCooldown(1, "jab"), "non-positive clears a running entry")
	assert.Zero(t, p.Len())
}

func TestProvider_ResetAndClear(t *testing.T) {
	p := NewProvider()
	p.StartCooldown(1, "a", 3)
	p.StartCooldown(1, "b", 3)
	p.StartCooldown(2, "a", 3)

	p.Reset(1)
	assert.False(t, p.IsOnCooldown(1, "a"))
	assert.False(t, p.IsOnCooldown(1, "b"))
	assert.True(t, p.IsOnCooldown(2, "a"))

	p.Clear()
	assert.Zero(t, p.Len())
}
