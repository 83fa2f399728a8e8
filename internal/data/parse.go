package data

import (
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
)

// ErrInvalidArgument is wrapped by every enum lookup failure.
var ErrInvalidArgument = errors.New("invalid argument")

// BossKind names a boss behavior repertoire.
type BossKind string

const (
	BossSummoner BossKind = "summoner"
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ParseModifierType parses flat, percent_add or percent_mult.
func ParseModifierType(s string) (model.ModifierType, error) {
	switch normalize(s) {
	case "flat":
		return model.ModifierFlat, nil
	case "percent_add":
		return model.ModifierPercentAdd, nil
	case "percent_mult":
		return model.ModifierPercentMult, nil
	default:
		return 0, fmt.Errorf("modifier type %q: %w", s, ErrInvalidArgument)
	}
}

// ParseAbilityKind parses melee, projectile or area.
func ParseAbilityKind(s string) (ability.Kind, error) {
	switch normalize(s) {
	case "melee":
		return ability.KindMelee, nil
	case "projectile":
		return ability.KindProjectile, nil
	case "area":
		return ability.KindArea, nil
	default:
		return 0, fmt.Errorf("ability kind %q: %w", s, ErrInvalidArgument)
	}
}

// ParseMovementKind parses linear, arc or homing. Empty means linear.
func ParseMovementKind(s string) (projectile.Kind, error) {
	switch normalize(s) {
	case "", "linear":
		return projectile.KindLinear, nil
	case "arc":
		return projectile.KindArc, nil
	case "homing":
		return projectile.KindHoming, nil
	default:
		return 0, fmt.Errorf("movement kind %q: %w", s, ErrInvalidArgument)
	}
}

// ParseBossKind parses a boss repertoire name. Empty means summoner.
func ParseBossKind(s string) (BossKind, error) {
	switch normalize(s) {
	case "", string(BossSummoner):
		return BossSummoner, nil
	default:
		return "", fmt.Errorf("boss kind %q: %w", s, ErrInvalidArgument)
	}
}

// ParseCharacterKind parses player, enemy or boss.
func ParseCharacterKind(s string) (model.CharacterKind, error) {
	switch normalize(s) {
	case "player":
		return model.KindPlayer, nil
	case "enemy":
		return model.KindEnemy, nil
	case "boss":
		return model.KindBoss, nil
	default:
		return 0, fmt.Errorf("character kind %q: %w", s, ErrInvalidArgument)
	}
}

// ParseTeam parses player, enemy or neutral. Empty derives the team from
// kind: players are on the player team, everything else is an enemy.
func ParseTeam(s string, kind model.CharacterKind) (model.Team, error) {
	switch normalize(s) {
	case "":
		if kind == model.KindPlayer {
			return model.TeamPlayer, nil
		}
		return model.TeamEnemy, nil
	case "player":
		return model.TeamPlayer, nil
	case "enemy":
		return model.TeamEnemy, nil
	case "neutral":
		return model.TeamNeutral, nil
	default:
		return 0, fmt.Errorf("team %q: %w", s, ErrInvalidArgument)
	}
}

// ParseStat resolves a standard stat name.
func ParseStat(s string) (*model.StatDefinition, error) {
	def, ok := model.StatByName(normalize(s))
	if !ok {
		return nil, fmt.Errorf("stat %q: %w", s, ErrInvalidArgument)
	}
	return def, nil
}

// ParseAnimation resolves an animation name. Empty means none, which the
// ability turns into the default attack animation.
func ParseAnimation(s string) (ability.AnimationID, error) {
	if normalize(s) == "" {
		return ability.AnimNone, nil
	}
	id, ok := ability.AnimationByName(normalize(s))
	if !ok {
		return 0, fmt.Errorf("animation %q: %w", s, ErrInvalidArgument)
	}
	return id, nil
}
