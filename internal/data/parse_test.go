package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
)

func TestParseEnums(t *testing.T) {
	typ, err := ParseModifierType(" Percent_Mult ")
	require.NoError(t, err)
	assert.Equal(t, model.ModifierPercentMult, typ)

	kind, err := ParseAbilityKind("area")
	require.NoError(t, err)
	assert.Equal(t, ability.KindArea, kind)

	mv, err := ParseMovementKind("")
	require.NoError(t, err)
	assert.Equal(t, projectile.KindLinear, mv)

	bk, err := ParseBossKind("")
	require.NoError(t, err)
	assert.Equal(t, BossSummoner, bk)

	team, err := ParseTeam("", model.KindBoss)
	require.NoError(t, err)
	assert.Equal(t, model.TeamEnemy, team)

	stat, err := ParseStat("move_speed")
	require.NoError(t, err)
	assert.Same(t, model.StatMoveSpeed, stat)

	anim, err := ParseAnimation("")
	require.NoError(t, err)
	assert.Equal(t, ability.AnimNone, anim)
}

func TestParseEnums_Invalid(t *testing.T) {
	_, err := ParseModifierType("double")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseAbilityKind("")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseMovementKind("spiral")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseCharacterKind("npc")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseTeam("blue", model.KindPlayer)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ParseAnimation("dance")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
