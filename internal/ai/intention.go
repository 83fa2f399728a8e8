package ai

// Intention is the coarse AI state reported by controllers.
type Intention int32

const (
	// IntentionIdle - no target, standing still
	IntentionIdle Intention = iota
	// IntentionActive - controller running, looking for work
	IntentionActive
	// IntentionChase - moving toward the current target
	IntentionChase
	// IntentionAttack - an ability was requested this tick
	IntentionAttack
	// IntentionDodge - sidestepping an incoming projectile
	IntentionDodge
	// IntentionDead - owner is dead
	IntentionDead
)

// String returns human-readable intention name
func (i Intention) String() string {
	switch i {
	case IntentionIdle:
		return "IDLE"
	case IntentionActive:
		return "ACTIVE"
	case IntentionChase:
		return "CHASE"
	case IntentionAttack:
		return "ATTACK"
	case IntentionDodge:
		return "DODGE"
	case IntentionDead:
		return "DEAD"
	default:
		return "UNKNOWN"
	}
}
