// Package sim owns one arena session: the world, the event bus and every
// manager, ticked in a fixed order on a single goroutine.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/ai"
	"github.com/udisondev/encounter/internal/config"
	"github.com/udisondev/encounter/internal/data"
	"github.com/udisondev/encounter/internal/event"
	"github.com/udisondev/encounter/internal/game/ability"
	"github.com/udisondev/encounter/internal/game/combat"
	"github.com/udisondev/encounter/internal/game/cooldown"
	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/game/raid"
	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/spawn"
	"github.com/udisondev/encounter/internal/world"
)

// Simulation is one arena session.
//
// Tick order: stat modifiers → cooldowns → resource regen → AI →
// cast windups → hitboxes → projectiles → dead-enemy cleanup → boss
// respawns → session time.
type Simulation struct {
	cfg config.Arena

	world  *world.World
	bus    *event.Bus
	env    *ability.Env
	ai     *ai.TickManager
	spawns *spawn.Manager
	ledger *raid.Ledger

	reload chan *data.Registry

	player     *spawn.Entity
	bossPoints []cp.Vector

	elapsed float64
	ticks   int
}

// New builds a session over reg. store persists the encounter ledger; nil
// keeps it in memory.
func New(cfg config.Arena, reg *data.Registry, store raid.Store) *Simulation {
	bounds := cfg.Bounds.BB()
	w := world.New(bounds, cfg.RegionSize)
	bus := event.NewBus()

	env := &ability.Env{
		World:       w,
		Pipeline:    combat.NewPipeline(cfg.MinDamagePercent),
		Cooldowns:   cooldown.NewProvider(),
		Projectiles: projectile.NewManager(w),
		Hitboxes:    ability.NewHitboxManager(),
		Events:      bus,
	}

	obstacles := make([]cp.BB, 0, len(cfg.Obstacles))
	for _, o := range cfg.Obstacles {
		obstacles = append(obstacles, o.BB())
	}
	validator := spawn.NewValidator(bounds, obstacles, cfg.Spawn.Clearance, cfg.Spawn.MinDistance)

	factory := spawn.NewFactory(reg, env)
	factory.SetAutoPlayers(cfg.PlayerAuto)

	aiMgr := ai.NewTickManager()

	bossPoints := make([]cp.Vector, 0, len(cfg.Spawn.BossPoints))
	for _, p := range cfg.Spawn.BossPoints {
		bossPoints = append(bossPoints, cp.Vector{X: p[0], Y: p[1]})
	}

	return &Simulation{
		cfg:        cfg,
		world:      w,
		bus:        bus,
		env:        env,
		ai:         aiMgr,
		spawns:     spawn.NewManager(factory, validator, w, aiMgr),
		ledger:     raid.NewLedger(store),
		reload:     make(chan *data.Registry, 1),
		bossPoints: bossPoints,
	}
}

// World returns the spatial registry.
func (s *Simulation) World() *world.World {
	return s.world
}

// Bus returns the event bus.
func (s *Simulation) Bus() *event.Bus {
	return s.bus
}

// Env returns the services shared by casters.
func (s *Simulation) Env() *ability.Env {
	return s.env
}

// AI returns the AI tick manager.
func (s *Simulation) AI() *ai.TickManager {
	return s.ai
}

// Spawns returns the entity manager.
func (s *Simulation) Spawns() *spawn.Manager {
	return s.spawns
}

// Ledger returns the outcome ledger.
func (s *Simulation) Ledger() *raid.Ledger {
	return s.ledger
}

// Player returns the player entity, nil before Init.
func (s *Simulation) Player() *spawn.Entity {
	return s.player
}

// Boss returns the configured boss entity.
func (s *Simulation) Boss() (*spawn.Entity, bool) {
	return s.spawns.BossEntity(s.cfg.Boss)
}

// Elapsed returns session time in seconds.
func (s *Simulation) Elapsed() float64 {
	return s.elapsed
}

// Ticks returns the number of ticks run.
func (s *Simulation) Ticks() int {
	return s.ticks
}

// Init loads the ledger, spawns the player and, unless it is waiting to
// respawn, the boss.
func (s *Simulation) Init(ctx context.Context) error {
	if ai.IsDebugEnabled() {
		s.bus.SubscribeAll(event.Logger())
	}
	s.bus.Subscribe(event.BossDied, s.ledger.Handler(ctx))

	if err := s.ledger.Init(ctx); err != nil {
		return fmt.Errorf("initializing ledger: %w", err)
	}

	reg := s.spawns.Factory().Registry()
	for _, id := range reg.BossIDs() {
		def, _ := reg.Boss(id)
		s.ledger.SetRespawnDelay(id, def.RespawnDelay)
	}

	if s.cfg.Player != "" {
		start := cp.Vector{X: s.cfg.Spawn.PlayerStart[0], Y: s.cfg.Spawn.PlayerStart[1]}
		p, err := s.spawns.Spawn(s.cfg.Player, start)
		if err != nil {
			return fmt.Errorf("spawning player: %w", err)
		}
		s.player = p
	}

	if s.cfg.Boss != "" && !s.ledger.IsPending(s.cfg.Boss) {
		if _, err := s.spawns.SpawnBoss(s.cfg.Boss, s.bossPoints); err != nil {
			return fmt.Errorf("spawning boss: %w", err)
		}
		if err := s.ledger.OnBossSpawned(ctx, s.cfg.Boss); err != nil {
			slog.Warn("clearing boss respawn", "boss", s.cfg.Boss, "error", err)
		}
	}

	slog.Info("simulation initialized",
		"player", s.cfg.Player,
		"boss", s.cfg.Boss,
		"entities", s.spawns.Count(),
		"tickRate", s.cfg.TickRate)
	return nil
}

// Tick advances the session by dt seconds.
func (s *Simulation) Tick(dt float64) {
	s.spawns.UpdateStats(dt)
	s.env.Cooldowns.Tick(dt)
	s.spawns.Regenerate(dt)
	s.ai.Tick(dt)
	s.spawns.TickCasters(dt)
	s.env.Hitboxes.Tick(dt)
	s.env.Projectiles.Tick(dt)
	s.spawns.Reap()
	s.respawn(dt)

	s.elapsed += dt
	s.ticks++
}

func (s *Simulation) respawn(dt float64) {
	for _, id := range s.ledger.Tick(dt) {
		if _, err := s.spawns.RespawnBoss(id, s.bossPoints); err != nil {
			slog.Error("boss respawn failed", "boss", id, "error", err)
			continue
		}
		if err := s.ledger.OnBossSpawned(context.Background(), id); err != nil {
			slog.Warn("clearing boss respawn", "boss", id, "error", err)
		}
	}
}

// Over reports whether the encounter ended: the player died, or the boss
// died and will not respawn.
func (s *Simulation) Over() bool {
	if s.player != nil && s.player.Character.IsDead() {
		return true
	}
	if s.cfg.Boss == "" {
		return false
	}
	b, ok := s.Boss()
	if !ok {
		return !s.ledger.IsPending(s.cfg.Boss)
	}
	return b.Character.IsDead() && !s.ledger.IsPending(s.cfg.Boss)
}

// RequestReload hands new definitions to the loop goroutine. They apply
// between ticks; a newer request replaces one not yet applied. Safe to
// call from any goroutine.
func (s *Simulation) RequestReload(reg *data.Registry) {
	for {
		select {
		case s.reload <- reg:
			return
		default:
		}
		select {
		case <-s.reload:
		default:
		}
	}
}

func (s *Simulation) applyReload() {
	select {
	case reg := <-s.reload:
		s.spawns.Factory().SetRegistry(reg)
		for _, id := range reg.BossIDs() {
			def, _ := reg.Boss(id)
			s.ledger.SetRespawnDelay(id, def.RespawnDelay)
		}
		slog.Info("encounter definitions reloaded", "bosses", len(reg.BossIDs()))
	default:
	}
}

// Run ticks at the configured rate until ctx is canceled, MaxTicks is
// reached or the encounter is over. Returns ctx.Err() on cancellation.
func (s *Simulation) Run(ctx context.Context) error {
	dt := 1 / float64(s.cfg.TickRate)
	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.TickRate))
	defer ticker.Stop()

	slog.Info("simulation loop started", "tickRate", s.cfg.TickRate, "maxTicks", s.cfg.MaxTicks)

	for {
		s.applyReload()

		select {
		case <-ctx.Done():
			slog.Info("simulation loop stopping", "ticks", s.ticks, "elapsed", s.elapsed)
			return ctx.Err()
		case <-ticker.C:
			s.Tick(dt)
		}

		if s.cfg.MaxTicks > 0 && s.ticks >= s.cfg.MaxTicks {
			slog.Info("simulation tick limit reached", "ticks", s.ticks)
			return nil
		}
		if s.Over() {
			s.logResult()
			return nil
		}
	}
}

func (s *Simulation) logResult() {
	winner := "boss"
	if s.player == nil || !s.player.Character.IsDead() {
		winner = "player"
	}
	slog.Info("encounter over",
		"winner", winner,
		"elapsed", s.elapsed,
		"ticks", s.ticks,
		"kills", len(s.ledger.Outcomes()),
		"enemiesAlive", s.spawns.CountAlive(model.KindEnemy))
}

// Shutdown removes every entity and clears all managers.
func (s *Simulation) Shutdown() {
	s.spawns.Clear()
	s.ai.Clear()
	s.env.Projectiles.Clear()
	s.env.Hitboxes.Clear()
	s.env.Cooldowns.Clear()
	s.world.Reset()
	slog.Info("simulation shut down", "ticks", s.ticks, "elapsed", s.elapsed)
}
