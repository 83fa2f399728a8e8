// Package cooldown tracks per-owner, per-action reuse timers.
package cooldown

import (
	"log/slog"

	"github.com/udisondev/encounter/internal/model"
)

// ActionID identifies one cooldown bucket (usually an ability id).
// Abilities that should share a cooldown use the same ActionID.
type ActionID string

// key is the registry key: cooldowns are independent per (owner, action).
type key struct {
	owner  uint32
	action ActionID
}

// Provider is a registry of running cooldowns advanced by Tick.
// Entries exist only while remaining time is positive.
type Provider struct {
	remaining map[key]float64
}

// NewProvider creates an empty registry.
func NewProvider() *Provider {
	return &Provider{remaining: make(map[key]float64)}
}

// StartCooldown puts action on cooldown for owner. A non-positive duration
// never enters the registry and clears any running entry.
func (p *Provider) StartCooldown(owner uint32, action ActionID, duration float64) {
	k := key{owner: owner, action: action}
	if duration <= 0 {
		delete(p.remaining, k)
		return
	}
	p.remaining[k] = duration
}

// IsOnCooldown reports whether action is blocked for owner.
func (p *Provider) IsOnCooldown(owner uint32, action ActionID) bool {
	_, ok := p.remaining[key{owner: owner, action: action}]
	return ok
}

// Remaining returns seconds left, 0 when off cooldown.
func (p *Provider) Remaining(owner uint32, action ActionID) float64 {
	return p.remaining[key{owner: owner, action: action}]
}

// Tick decrements every entry by dt and drops the elapsed ones.
func (p *Provider) Tick(dt float64) {
	for k, left := range p.remaining {
		left -= dt
		if model.TimerElapsed(left) {
			delete(p.remaining, k)
			continue
		}
		p.remaining[k] = left
	}
}

// Reset drops every entry of owner (respawn).
func (p *Provider) Reset(owner uint32) {
	n := 0
	for k := range p.remaining {
		if k.owner == owner {
			delete(p.remaining, k)
			n++
		}
	}
	if n > 0 {
		slog.Debug("cooldowns reset", "owner", owner, "count", n)
	}
}

// Clear drops every entry.
func (p *Provider) Clear() {
	clear(p.remaining)
}

// Len returns the number of running cooldowns.
func (p *Provider) Len() int {
	return len(p.remaining)
}
