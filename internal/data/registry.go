package data

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/boss"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
)

// Registry holds validated encounter definitions. Abilities are built once
// and shared by every caster that slots them.
type Registry struct {
	abilities  map[string]*ability.Ability
	characters map[string]*CharacterDef
	bosses     map[string]*BossDef
	bossOrder  []string
}

// Load reads and parses a definitions file.
func Load(path string) (*Registry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions %s: %w", path, err)
	}
	r, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("parsing definitions %s: %w", path, err)
	}
	return r, nil
}

// Parse decodes a YAML document and validates every cross-reference.
func Parse(b []byte) (*Registry, error) {
	var doc Document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}
	return build(doc)
}

func build(doc Document) (*Registry, error) {
	r := &Registry{
		abilities:  make(map[string]*ability.Ability, len(doc.Abilities)),
		characters: make(map[string]*CharacterDef, len(doc.Characters)),
		bosses:     make(map[string]*BossDef, len(doc.Bosses)),
	}

	var errs []error
	for i := range doc.Abilities {
		def := &doc.Abilities[i]
		if _, dup := r.abilities[def.ID]; dup {
			errs = append(errs, fmt.Errorf("ability %q: duplicate id", def.ID))
			continue
		}
		a, err := BuildAbility(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		r.abilities[def.ID] = a
	}

	for i := range doc.Characters {
		def := &doc.Characters[i]
		if err := r.validateCharacter(def); err != nil {
			errs = append(errs, err)
			continue
		}
		r.characters[def.ID] = def
	}

	for i := range doc.Bosses {
		def := &doc.Bosses[i]
		if err := r.validateBoss(def); err != nil {
			errs = append(errs, err)
			continue
		}
		r.bosses[def.ID] = def
		r.bossOrder = append(r.bossOrder, def.ID)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	slog.Debug("encounter definitions loaded",
		"abilities", len(r.abilities),
		"characters", len(r.characters),
		"bosses", len(r.bosses))
	return r, nil
}

func (r *Registry) validateCharacter(def *CharacterDef) error {
	if def.ID == "" {
		return errors.New("character: empty id")
	}
	if _, dup := r.characters[def.ID]; dup {
		return fmt.Errorf("character %q: duplicate id", def.ID)
	}
	kind, err := ParseCharacterKind(def.Kind)
	if err != nil {
		return fmt.Errorf("character %q: %w", def.ID, err)
	}
	if _, err := ParseTeam(def.Team, kind); err != nil {
		return fmt.Errorf("character %q: %w", def.ID, err)
	}
	for name := range def.Stats {
		if _, err := ParseStat(name); err != nil {
			return fmt.Errorf("character %q: %w", def.ID, err)
		}
	}
	for _, id := range def.Abilities {
		if _, ok := r.abilities[id]; !ok {
			return fmt.Errorf("character %q: unknown ability %q", def.ID, id)
		}
	}
	return nil
}

func (r *Registry) validateBoss(def *BossDef) error {
	if def.ID == "" {
		return errors.New("boss: empty id")
	}
	if _, dup := r.bosses[def.ID]; dup {
		return fmt.Errorf("boss %q: duplicate id", def.ID)
	}
	if _, err := ParseBossKind(def.Kind); err != nil {
		return fmt.Errorf("boss %q: %w", def.ID, err)
	}
	body, ok := r.characters[def.Character]
	if !ok {
		return fmt.Errorf("boss %q: unknown character %q", def.ID, def.Character)
	}
	if kind, _ := ParseCharacterKind(body.Kind); kind != model.KindBoss {
		return fmt.Errorf("boss %q: character %q is not a boss", def.ID, def.Character)
	}
	if def.MinionID != "" {
		if _, ok := r.characters[def.MinionID]; !ok {
			return fmt.Errorf("boss %q: unknown minion %q", def.ID, def.MinionID)
		}
	}
	if def.Phase2HealthThreshold < 0 || def.Phase2HealthThreshold > 1 {
		return fmt.Errorf("boss %q: phase2_health_threshold %v out of [0, 1]", def.ID, def.Phase2HealthThreshold)
	}
	for _, ring := range []boss.RingSpec{def.Phase1.Ring, def.Phase2.Ring} {
		if ring.Projectiles > 0 && (ring.Speed <= 0 || ring.Range <= 0) {
			return fmt.Errorf("boss %q: ring projectiles need positive speed and range", def.ID)
		}
	}
	return nil
}

// BuildAbility turns a definition into an ability with its effect and
// standard conditions.
func BuildAbility(def *AbilityDef) (*ability.Ability, error) {
	if def.ID == "" {
		return nil, errors.New("ability: empty id")
	}
	wrap := func(err error) error { return fmt.Errorf("ability %q: %w", def.ID, err) }

	kind, err := ParseAbilityKind(def.Kind)
	if err != nil {
		return nil, wrap(err)
	}
	anim, err := ParseAnimation(def.Animation)
	if err != nil {
		return nil, wrap(err)
	}

	a := ability.Ability{
		ID:          def.ID,
		Name:        def.Name,
		Animation:   anim,
		Cooldown:    def.Cooldown,
		Cost:        def.Cost,
		CastTime:    def.CastTime,
		Range:       def.Range,
		BaseDamage:  def.BaseDamage,
		DamageScale: def.DamageScale,
	}
	if def.ScaleStat != "" {
		if a.ScaleStat, err = ParseStat(def.ScaleStat); err != nil {
			return nil, wrap(err)
		}
	}

	switch kind {
	case ability.KindMelee:
		m := def.Melee
		if m == nil {
			m = &MeleeDef{Count: 1}
		}
		a.Effect = &ability.Melee{
			Count:       m.Count,
			SpreadAngle: m.SpreadAngle * math.Pi / 180,
			Interval:    m.Interval,
			Radius:      m.Radius,
			Offset:      m.Offset,
			Lifetime:    m.Lifetime,
		}
	case ability.KindProjectile:
		p := def.Projectile
		if p == nil {
			return nil, wrap(errors.New("projectile block missing"))
		}
		movement, err := ParseMovementKind(p.Movement)
		if err != nil {
			return nil, wrap(err)
		}
		if p.Speed <= 0 {
			return nil, wrap(fmt.Errorf("projectile speed must be positive, got %v", p.Speed))
		}
		if p.Lifetime <= 0 && def.Range <= 0 {
			return nil, wrap(errors.New("projectile needs a positive range or lifetime"))
		}
		shot := &ability.Projectile{
			Movement:     movement,
			Speed:        p.Speed,
			Lifetime:     p.Lifetime,
			Pierce:       p.Pierce,
			Radius:       p.Radius,
			MaxHeight:    p.MaxHeight,
			TurnRate:     p.TurnRate * math.Pi / 180,
			SearchRadius: p.SearchRadius,
		}
		if len(p.Curve) > 0 {
			shot.Curve = projectile.NewKeyframeCurve(p.Curve)
		}
		a.Effect = shot
	case ability.KindArea:
		area := def.Area
		if area == nil {
			return nil, wrap(errors.New("area block missing"))
		}
		a.Effect = &ability.Area{Radius: area.Radius, AtAimPoint: area.AtAimPoint}
	}

	for _, md := range def.SelfModifiers {
		stat, err := ParseStat(md.Stat)
		if err != nil {
			return nil, wrap(err)
		}
		typ, err := ParseModifierType(md.Type)
		if err != nil {
			return nil, wrap(err)
		}
		a.SelfModifiers = append(a.SelfModifiers, ability.SelfModifier{
			Stat:     stat,
			Value:    md.Value,
			Type:     typ,
			Duration: md.Duration,
		})
	}

	return ability.New(a), nil
}

// Ability returns the ability with id.
func (r *Registry) Ability(id string) (*ability.Ability, bool) {
	a, ok := r.abilities[id]
	return a, ok
}

// Character returns the character definition with id.
func (r *Registry) Character(id string) (*CharacterDef, bool) {
	c, ok := r.characters[id]
	return c, ok
}

// Boss returns the boss definition with id.
func (r *Registry) Boss(id string) (*BossDef, bool) {
	b, ok := r.bosses[id]
	return b, ok
}

// BossIDs returns boss ids in file order.
func (r *Registry) BossIDs() []string {
	return r.bossOrder
}

// Abilities resolves the ability slots of def in order.
func (r *Registry) Abilities(def *CharacterDef) []*ability.Ability {
	out := make([]*ability.Ability, 0, len(def.Abilities))
	for _, id := range def.Abilities {
		if a, ok := r.abilities[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// NewStats builds a fresh stats provider from the base stats of def.
// Names were validated at load time.
func NewStats(def *CharacterDef) *model.StatsProvider {
	base := make(map[*model.StatDefinition]float64, len(def.Stats))
	for name, v := range def.Stats {
		if stat, err := ParseStat(name); err == nil {
			base[stat] = v
		}
	}
	return model.NewStatsProviderFrom(base)
}

// EnemyConfig returns the AI tuning of def, defaults when it has none.
func EnemyConfig(def *CharacterDef) ai.EnemyConfig {
	if def.AI == nil {
		return ai.DefaultEnemyConfig()
	}
	cfg := *def.AI
	if cfg.Threat == (ai.ThreatConfig{}) {
		cfg.Threat = ai.DefaultThreatConfig()
	}
	return cfg
}
