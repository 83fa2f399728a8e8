package ability

import "fmt"

// AnimationID names a presentation-layer animation. The simulation never
// binds animation parameters itself; it only tells the Animator what to play.
type AnimationID int8

const (
	AnimNone AnimationID = iota
	AnimIdle
	AnimAttack
	AnimAttackHeavy
	AnimCast
	AnimShoot
	AnimSlam
	AnimSummon
)

var animationNames = map[AnimationID]string{
	AnimNone:        "none",
	AnimIdle:        "idle",
	AnimAttack:      "attack",
	AnimAttackHeavy: "attack_heavy",
	AnimCast:        "cast",
	AnimShoot:       "shoot",
	AnimSlam:        "slam",
	AnimSummon:      "summon",
}

// String returns the YAML name of the animation.
func (a AnimationID) String() string {
	if name, ok := animationNames[a]; ok {
		return name
	}
	return fmt.Sprintf("AnimationID(%d)", int8(a))
}

// AnimationByName resolves a YAML animation name.
func AnimationByName(name string) (AnimationID, bool) {
	for id, n := range animationNames {
		if n == name {
			return id, true
		}
	}
	return AnimNone, false
}

// IsAction reports whether the animation is tagged "Action": while one is
// playing no other cast may start.
func (a AnimationID) IsAction() bool {
	return a != AnimNone && a != AnimIdle
}

// Animator is the presentation collaborator of a caster.
type Animator interface {
	Play(anim AnimationID)
	IsPlayingAction() bool
}

// NopAnimator is used when no presentation layer is attached.
// It never reports an action as playing.
type NopAnimator struct{}

func (NopAnimator) Play(AnimationID) {}

func (NopAnimator) IsPlayingAction() bool { return false }
