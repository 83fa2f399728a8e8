package model

import "github.com/jakecoffman/cp"

// DamageData is the immutable result of one attack resolution, passed to
// a Damageable target. Never persisted beyond a single delivery.
type DamageData struct {
	Amount         float64
	IsCritical     bool
	Instigator     uint32 // objectID of the attacker, 0 for environment
	SourcePosition cp.Vector
}

// Damageable is anything that can receive resolved damage.
// Returns the amount actually removed from the target.
type Damageable interface {
	TakeDamage(data DamageData) float64
}
