package data

import (
	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/game/boss"
	"github.com/udisondev/encounter/internal/game/projectile"
)

// Document is the root of an encounter definitions file.
type Document struct {
	Abilities  []AbilityDef   `yaml:"abilities"`
	Characters []CharacterDef `yaml:"characters"`
	Bosses     []BossDef      `yaml:"bosses"`
}

// AbilityDef describes one ability. Exactly one of Melee, Projectile or
// Area is read, selected by Kind.
type AbilityDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Kind        string  `yaml:"kind"`
	Animation   string  `yaml:"animation"`
	Cooldown    float64 `yaml:"cooldown"`
	Cost        float64 `yaml:"cost"`
	CastTime    float64 `yaml:"cast_time"`
	Range       float64 `yaml:"range"`
	BaseDamage  float64 `yaml:"base_damage"`
	DamageScale float64 `yaml:"damage_stat_scale"`
	ScaleStat   string  `yaml:"scale_stat"`

	Melee      *MeleeDef      `yaml:"melee"`
	Projectile *ProjectileDef `yaml:"projectile"`
	Area       *AreaDef       `yaml:"area"`

	SelfModifiers []ModifierDef `yaml:"self_modifiers"`
}

// MeleeDef tunes a melee ability. SpreadAngle is in degrees.
type MeleeDef struct {
	Count       int     `yaml:"count"`
	SpreadAngle float64 `yaml:"spread_angle"`
	Interval    float64 `yaml:"interval"`
	Radius      float64 `yaml:"radius"`
	Offset      float64 `yaml:"offset"`
	Lifetime    float64 `yaml:"lifetime"`
}

// ProjectileDef tunes a projectile ability. TurnRate is in degrees per
// second.
type ProjectileDef struct {
	Movement     string                `yaml:"movement"`
	Speed        float64               `yaml:"speed"`
	Lifetime     float64               `yaml:"lifetime"`
	Pierce       int                   `yaml:"pierce"`
	Radius       float64               `yaml:"radius"`
	MaxHeight    float64               `yaml:"max_height"`
	TurnRate     float64               `yaml:"turn_rate"`
	SearchRadius float64               `yaml:"search_radius"`
	Curve        []projectile.Keyframe `yaml:"curve"`
}

// AreaDef tunes an area ability.
type AreaDef struct {
	Radius     float64 `yaml:"radius"`
	AtAimPoint bool    `yaml:"at_aim_point"`
}

// ModifierDef is a timed stat modifier applied to the caster.
type ModifierDef struct {
	Stat     string  `yaml:"stat"`
	Type     string  `yaml:"type"`
	Value    float64 `yaml:"value"`
	Duration float64 `yaml:"duration"`
}

// CharacterDef describes a player, enemy or boss body.
type CharacterDef struct {
	ID        string             `yaml:"id"`
	Name      string             `yaml:"name"`
	Kind      string             `yaml:"kind"`
	Team      string             `yaml:"team"`
	Radius    float64            `yaml:"radius"`
	Stats     map[string]float64 `yaml:"stats"`
	Abilities []string           `yaml:"abilities"`
	AI        *ai.EnemyConfig    `yaml:"ai"`
}

// BossDef binds a boss behavior to a character body.
type BossDef struct {
	boss.Config `yaml:",inline"`

	Character    string  `yaml:"character"`
	Kind         string  `yaml:"kind"`
	RespawnDelay float64 `yaml:"respawn_delay"`
}
