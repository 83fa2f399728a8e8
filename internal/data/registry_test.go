package data

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
)

func TestLoadDefault(t *testing.T) {
	r, err := LoadDefault()
	require.NoError(t, err)

	knight, ok := r.Character("knight")
	require.True(t, ok)
	slots := r.Abilities(knight)
	require.Len(t, slots, 5)
	assert.Equal(t, "sword_swing", slots[0].ID)

	stats := NewStats(knight)
	assert.InDelta(t, 600.0, stats.GetFinalStatValue(model.StatHealth), 1e-9)
	assert.InDelta(t, 0.15, stats.GetFinalStatValue(model.StatCritChance), 1e-9)

	b, ok := r.Boss("summoner")
	require.True(t, ok)
	assert.Equal(t, []string{"summoner"}, r.BossIDs())
	assert.Equal(t, "summoner_body", b.Character)
	assert.Equal(t, "imp", b.MinionID)
	assert.InDelta(t, 0.5, b.Phase2HealthThreshold, 1e-9)
	assert.Nil(t, b.Phase1.Attack2)
	require.NotNil(t, b.Phase2.Attack2)
	assert.Equal(t, "sweep", b.Phase2.Attack2.Name)
	assert.Equal(t, 16, b.Phase2.Ring.Projectiles)
	assert.Contains(t, b.PhaseCompleteScript, "complete")

	imp, ok := r.Character("imp")
	require.True(t, ok)
	cfg := EnemyConfig(imp)
	assert.True(t, cfg.Dodge)
	assert.InDelta(t, 350.0, cfg.AcquireRange, 1e-9)
	assert.Positive(t, cfg.Threat.ScanInterval, "threat defaults filled in")
}

func TestBuildAbility_Effects(t *testing.T) {
	r, err := LoadDefault()
	require.NoError(t, err)

	swing, _ := r.Ability("sword_swing")
	melee, ok := swing.Effect.(*ability.Melee)
	require.True(t, ok)
	assert.Equal(t, 3, melee.Count)
	assert.InDelta(t, math.Pi/3, melee.SpreadAngle, 1e-9, "degrees converted")

	fireball, _ := r.Ability("fireball")
	shot, ok := fireball.Effect.(*ability.Projectile)
	require.True(t, ok)
	assert.Equal(t, projectile.KindArc, shot.Movement)
	require.NotNil(t, shot.Curve)
	assert.InDelta(t, 1.0, shot.Curve.Evaluate(0.5), 1e-9)
	assert.Same(t, model.StatAbilityPower, fireball.ScaleStat)
	assert.Equal(t, ability.AnimCast, fireball.Animation)

	cry, _ := r.Ability("war_cry")
	require.Len(t, cry.SelfModifiers, 2)
	assert.Equal(t, model.ModifierPercentAdd, cry.SelfModifiers[0].Type)

	// Alive, cooldown, resource.
	assert.Len(t, cry.Conditions, 3)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{
			name:    "unknown ability kind",
			doc:     "abilities: [{id: a, kind: laser}]",
			invalid: true,
		},
		{
			name:    "unknown movement",
			doc:     "abilities: [{id: a, kind: projectile, projectile: {movement: zigzag}}]",
			invalid: true,
		},
		{
			name:    "unknown modifier type",
			doc:     "abilities: [{id: a, kind: area, area: {radius: 1}, self_modifiers: [{stat: damage, type: percent}]}]",
			invalid: true,
		},
		{
			name:    "unknown stat",
			doc:     "characters: [{id: c, kind: enemy, stats: {luck: 1}}]",
			invalid: true,
		},
		{
			name:    "unknown boss kind",
			doc:     "characters: [{id: b, kind: boss}]\nbosses: [{id: x, kind: dragon, character: b}]",
			invalid: true,
		},
		{
			name: "projectile without speed",
			doc:  "abilities: [{id: a, kind: projectile, range: 100, projectile: {movement: linear}}]",
		},
		{
			name: "projectile with negative speed",
			doc:  "abilities: [{id: a, kind: projectile, range: 100, projectile: {movement: linear, speed: -5}}]",
		},
		{
			name: "projectile without range or lifetime",
			doc:  "abilities: [{id: a, kind: projectile, projectile: {movement: homing, speed: 100}}]",
		},
		{
			name: "missing ability reference",
			doc:  "characters: [{id: c, kind: enemy, abilities: [nope]}]",
		},
		{
			name: "boss body is not a boss",
			doc:  "characters: [{id: c, kind: enemy}]\nbosses: [{id: x, character: c}]",
		},
		{
			name: "threshold out of range",
			doc:  "characters: [{id: b, kind: boss}]\nbosses: [{id: x, character: b, phase2_health_threshold: 2}]",
		},
		{
			name: "ring without speed",
			doc:  "characters: [{id: b, kind: boss}]\nbosses: [{id: x, character: b, phase2: {ring: {projectiles: 8, range: 200}}}]",
		},
		{
			name: "bad yaml",
			doc:  "abilities: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidArgument))
		})
	}
}

func TestParse_ProjectileLifetimeWithoutRange(t *testing.T) {
	reg, err := Parse([]byte("abilities: [{id: orb, kind: projectile, projectile: {movement: homing, speed: 100, lifetime: 2}}]"))
	require.NoError(t, err)

	a, ok := reg.Ability("orb")
	require.True(t, ok)
	shot, ok := a.Effect.(*ability.Projectile)
	require.True(t, ok)
	assert.Equal(t, 2.0, shot.Lifetime)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "encounter.yaml")
	require.NoError(t, os.WriteFile(path, DefaultEncounter(), 0o644))

	r, err := Load(path)
	require.NoError(t, err)
	_, ok := r.Boss("summoner")
	assert.True(t, ok)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
