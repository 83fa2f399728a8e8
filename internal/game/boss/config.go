package boss

// AttackSpec tunes one melee swing of the boss. The hit area is a circle of
// Radius placed Reach units in front of the boss.
type AttackSpec struct {
	Name          string  `yaml:"name"`
	Damage        float64 `yaml:"damage"`
	DamageScale   float64 `yaml:"damage_stat_scale"`
	Radius        float64 `yaml:"radius"`
	Reach         float64 `yaml:"reach"`
	DamageDelay   float64 `yaml:"damage_delay"`
	TotalDuration float64 `yaml:"total_duration"`
}

// RingSpec tunes the ring attack: Projectiles linear shots spread evenly
// around the boss. Zero Projectiles disables the attack.
type RingSpec struct {
	Cooldown      float64 `yaml:"cooldown"`
	Projectiles   int     `yaml:"projectiles"`
	Speed         float64 `yaml:"speed"`
	Range         float64 `yaml:"range"`
	Radius        float64 `yaml:"radius"`
	Damage        float64 `yaml:"damage"`
	DamageDelay   float64 `yaml:"damage_delay"`
	TotalDuration float64 `yaml:"total_duration"`
}

// SummonSpec tunes minion summoning. Zero Count disables it.
type SummonSpec struct {
	Cooldown               float64 `yaml:"cooldown"`
	Count                  int     `yaml:"count"`
	Radius                 float64 `yaml:"radius"`
	MinAttacksBeforeSummon int     `yaml:"min_attacks_before_summon"`
	DamageDelay            float64 `yaml:"damage_delay"`
	TotalDuration          float64 `yaml:"total_duration"`
}

// Tuning is the behavior repertoire of one phase.
type Tuning struct {
	IdleDuration         float64     `yaml:"idle_duration"`
	ChaseSpeedMultiplier float64     `yaml:"chase_speed_multiplier"`
	AttackRange          float64     `yaml:"attack_range"`
	Attack1              AttackSpec  `yaml:"attack1"`
	Attack2              *AttackSpec `yaml:"attack2"`
	Ring                 RingSpec    `yaml:"ring"`
	Summon               SummonSpec  `yaml:"summon"`
}

// Config describes one boss encounter.
type Config struct {
	ID                      string  `yaml:"id"`
	Phase2HealthThreshold   float64 `yaml:"phase2_health_threshold"`
	PhaseTransitionDuration float64 `yaml:"phase_transition_duration"`
	PhaseCompleteScript     string  `yaml:"phase_complete_script"`
	MinionID                string  `yaml:"minion"`
	AcquireRange            float64 `yaml:"acquire_range"`
	ReacquireCooldown       float64 `yaml:"reacquire_cooldown"`

	Phase1 Tuning `yaml:"phase1"`
	Phase2 Tuning `yaml:"phase2"`
}

// DefaultConfig returns the Summoner tuning: slam and sweep in phase 2,
// faster chase, shorter cooldowns and a denser ring.
func DefaultConfig() Config {
	slam := AttackSpec{
		Name:          "slam",
		Damage:        40,
		Radius:        60,
		Reach:         40,
		DamageDelay:   0.6,
		TotalDuration: 1.2,
	}
	sweep := AttackSpec{
		Name:          "sweep",
		Damage:        30,
		Radius:        90,
		Reach:         20,
		DamageDelay:   0.4,
		TotalDuration: 1.0,
	}

	return Config{
		ID:                      "summoner",
		Phase2HealthThreshold:   0.5,
		PhaseTransitionDuration: 2.0,
		AcquireRange:            800,
		ReacquireCooldown:       2.0,
		Phase1: Tuning{
			IdleDuration:         1.0,
			ChaseSpeedMultiplier: 1.0,
			AttackRange:          40,
			Attack1:              slam,
			Ring: RingSpec{
				Cooldown: 8, Projectiles: 8, Speed: 200, Range: 600, Radius: 6,
				Damage: 15, DamageDelay: 0.5, TotalDuration: 1.0,
			},
			Summon: SummonSpec{
				Cooldown: 15, Count: 2, Radius: 80, MinAttacksBeforeSummon: 2,
				DamageDelay: 0.8, TotalDuration: 1.5,
			},
		},
		Phase2: Tuning{
			IdleDuration:         0.5,
			ChaseSpeedMultiplier: 1.5,
			AttackRange:          40,
			Attack1:              slam,
			Attack2:              &sweep,
			Ring: RingSpec{
				Cooldown: 5, Projectiles: 16, Speed: 260, Range: 600, Radius: 6,
				Damage: 15, DamageDelay: 0.4, TotalDuration: 0.8,
			},
			Summon: SummonSpec{
				Cooldown: 10, Count: 3, Radius: 80, MinAttacksBeforeSummon: 2,
				DamageDelay: 0.6, TotalDuration: 1.2,
			},
		},
	}
}
