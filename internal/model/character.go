package model

import (
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"
)

// CharacterKind distinguishes players, regular enemies and bosses.
type CharacterKind int8

const (
	KindPlayer CharacterKind = iota
	KindEnemy
	KindBoss
)

// String returns the YAML name of the kind.
func (k CharacterKind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBoss:
		return "boss"
	default:
		return fmt.Sprintf("CharacterKind(%d)", int8(k))
	}
}

// DefaultMoveSpeed is used when a character has no MoveSpeed stat.
const DefaultMoveSpeed = 120.0

// Character: базовый тип для живых существ арены (игрок, враг, босс).
// Добавляет статы, HP и ману к WorldObject.
//
// Health max follows the Health stat and mana max follows the Mana stat:
// a buff on either recomputes the pool immediately, preserving percentage.
type Character struct {
	*WorldObject

	templateID string
	kind       CharacterKind

	stats  *StatsProvider
	health *Health
	mana   *Resource
}

// NewCharacter creates a character from base stats. Health and mana pools
// start full.
func NewCharacter(objectID uint32, templateID, name string, kind CharacterKind, team Team, pos cp.Vector, radius float64, stats *StatsProvider) *Character {
	if stats == nil {
		stats = NewStatsProvider()
	}

	var maxHP, maxMP float64
	if s, ok := stats.Stat(StatHealth); ok {
		maxHP = s.Value()
	}
	if s, ok := stats.Stat(StatMana); ok {
		maxMP = s.Value()
	}

	c := &Character{
		WorldObject: NewWorldObject(objectID, name, pos, radius, team),
		templateID:  templateID,
		kind:        kind,
		stats:       stats,
		health:      NewHealth(maxHP),
		mana:        NewResource(maxMP),
	}
	c.Data = c

	stats.OnChanged(StatHealth, c.health.SetMax)
	stats.OnChanged(StatMana, c.mana.SetMax)
	return c
}

// TemplateID returns the definition id the character was built from.
func (c *Character) TemplateID() string {
	return c.templateID
}

// Kind returns the character kind.
func (c *Character) Kind() CharacterKind {
	return c.kind
}

// Stats returns the owned stats provider.
func (c *Character) Stats() *StatsProvider {
	return c.stats
}

// Health returns the owned health pool.
func (c *Character) Health() *Health {
	return c.health
}

// Mana returns the owned mana pool.
func (c *Character) Mana() *Resource {
	return c.mana
}

// IsDead reports whether the character has died.
func (c *Character) IsDead() bool {
	return c.health.IsDead()
}

// IsValidTarget reports whether the character can still be targeted.
func (c *Character) IsValidTarget() bool {
	return c.IsActive() && !c.health.IsDead()
}

// TakeDamage implements Damageable.
func (c *Character) TakeDamage(data DamageData) float64 {
	return c.health.TakeDamage(data)
}

// MoveSpeed returns the final MoveSpeed stat. A character without the stat
// falls back to DefaultMoveSpeed (logged once by the provider).
func (c *Character) MoveSpeed() float64 {
	return c.stats.GetFinalStatValueOr(StatMoveSpeed, DefaultMoveSpeed)
}

// RegenerateMana restores mana by the ManaRegen stat. Dead characters do
// not regenerate.
func (c *Character) RegenerateMana(dt float64) {
	if c.health.IsDead() || !c.stats.Has(StatManaRegen) {
		return
	}
	c.mana.Regenerate(dt, c.stats.GetFinalStatValue(StatManaRegen))
}

// Respawn revives the character at pos with full pools and strips every
// timed modifier source passed in.
func (c *Character) Respawn(pos cp.Vector, sources ...string) {
	for _, src := range sources {
		c.stats.RemoveAllFromSource(src)
	}
	c.health.Reset()
	c.mana.Fill()
	c.SetPosition(pos)
	c.SetVelocity(cp.Vector{})
	c.SetActive(true)

	slog.Debug("character respawned",
		"objectID", c.ObjectID(),
		"template", c.templateID,
		"x", pos.X,
		"y", pos.Y)
}
