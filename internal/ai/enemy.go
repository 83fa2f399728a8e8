package ai

import (
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

// EnemyConfig tunes the behaviour of a regular enemy.
type EnemyConfig struct {
	AcquireRange      float64      `yaml:"acquire_range"`
	ReacquireCooldown float64      `yaml:"reacquire_cooldown"`
	Dodge             bool         `yaml:"dodge"`
	ReactionTime      float64      `yaml:"reaction_time"`
	DodgeSpeedFactor  float64      `yaml:"dodge_speed_factor"`
	Threat            ThreatConfig `yaml:"threat"`
}

// DefaultEnemyConfig returns the tuning used for enemies without an ai block.
func DefaultEnemyConfig() EnemyConfig {
	return EnemyConfig{
		AcquireRange:      400,
		ReacquireCooldown: 1.0,
		ReactionTime:      0.3,
		DodgeSpeedFactor:  1.5,
		Threat:            DefaultThreatConfig(),
	}
}

// EnemyAI is the controller of a regular enemy: acquire a target, chase it,
// use the first usable ability and sidestep incoming projectiles.
type EnemyAI struct {
	self      *model.Character
	world     *world.World
	caster    *ability.Caster
	acquirer  *TargetAcquirer
	detector  *ThreatDetector
	cfg       EnemyConfig
	intention Intention
	running   bool
}

// NewEnemyAI creates a controller for self. caster may be nil for enemies
// without abilities.
func NewEnemyAI(self *model.Character, w *world.World, caster *ability.Caster, cfg EnemyConfig) *EnemyAI {
	e := &EnemyAI{
		self:     self,
		world:    w,
		caster:   caster,
		acquirer: NewTargetAcquirer(self, w, cfg.AcquireRange, cfg.ReacquireCooldown),
		cfg:      cfg,
	}
	if cfg.Dodge {
		e.detector = NewThreatDetector(self, w, cfg.Threat)
	}
	return e
}

// Character returns the controlled character.
func (e *EnemyAI) Character() *model.Character {
	return e.self
}

// Target returns the current target.
func (e *EnemyAI) Target() *model.Character {
	return e.acquirer.Target()
}

// Detector returns the threat detector, nil when dodging is disabled.
func (e *EnemyAI) Detector() *ThreatDetector {
	return e.detector
}

// Start implements Controller.
func (e *EnemyAI) Start() {
	e.running = true
	e.SetIntention(IntentionActive)

	if IsDebugEnabled() {
		slog.Debug("enemy AI started",
			"enemy", e.self.Name(),
			"objectID", e.self.ObjectID(),
			"acquireRange", e.cfg.AcquireRange)
	}
}

// Stop implements Controller.
func (e *EnemyAI) Stop() {
	e.running = false
	e.acquirer.Reset()
	e.self.SetVelocity(cp.Vector{})
	e.SetIntention(IntentionIdle)
}

// SetIntention implements Controller.
func (e *EnemyAI) SetIntention(intention Intention) {
	old := e.intention
	e.intention = intention

	if old != intention && IsDebugEnabled() {
		slog.Debug("enemy AI intention changed",
			"enemy", e.self.Name(),
			"objectID", e.self.ObjectID(),
			"from", old,
			"to", intention)
	}
}

// CurrentIntention implements Controller.
func (e *EnemyAI) CurrentIntention() Intention {
	return e.intention
}

// Tick implements Controller.
func (e *EnemyAI) Tick(dt float64) {
	if !e.running {
		return
	}
	if e.self.IsDead() {
		e.SetIntention(IntentionDead)
		return
	}

	if e.detector != nil {
		e.detector.Tick(dt)
		if e.detector.ShouldDodgeNow(e.cfg.ReactionTime) {
			if dir := e.detector.DodgeVector(); dir.LengthSq() > 0 {
				Step(e.world, e.self, dir, e.self.MoveSpeed()*e.cfg.DodgeSpeedFactor*dt)
				e.SetIntention(IntentionDodge)
				return
			}
		}
	}

	target := e.acquirer.Tick(dt)
	if target == nil {
		e.self.SetVelocity(cp.Vector{})
		e.SetIntention(IntentionActive)
		return
	}

	if e.caster != nil && e.caster.IsCasting() {
		return
	}
	if e.tryAbility(target) {
		e.SetIntention(IntentionAttack)
		return
	}

	MoveToward(e.world, e.self, target.Position(), e.engageDistance(target), e.self.MoveSpeed(), dt)
	e.SetIntention(IntentionChase)
}

func (e *EnemyAI) tryAbility(target *model.Character) bool {
	if e.caster == nil {
		return false
	}
	for i := range e.caster.Slots() {
		if e.caster.CanUse(i, target) {
			return e.caster.RequestAbilityOn(i, target)
		}
	}
	return false
}

// engageDistance is the center distance at which the shortest-range ability
// reaches target.
func (e *EnemyAI) engageDistance(target *model.Character) float64 {
	reach := 0.0
	if e.caster != nil {
		for _, a := range e.caster.Slots() {
			if a.Range > 0 && (reach == 0 || a.Range < reach) {
				reach = a.Range
			}
		}
	}
	return reach + e.self.Radius() + target.Radius()
}
