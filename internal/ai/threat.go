package ai

import (
	"log/slog"
	"math"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

// ThreatConfig tunes a ThreatDetector.
type ThreatConfig struct {
	ScanInterval    float64 `yaml:"scan_interval"`
	ScanRadius      float64 `yaml:"scan_radius"`
	MinThreatSpeed  float64 `yaml:"min_threat_speed"`
	AimDotThreshold float64 `yaml:"aim_dot_threshold"`
	DangerTime      float64 `yaml:"danger_time"`
}

// DefaultThreatConfig returns detector tuning used when a definition sets none.
func DefaultThreatConfig() ThreatConfig {
	return ThreatConfig{
		ScanInterval:    0.1,
		ScanRadius:      300,
		MinThreatSpeed:  50,
		AimDotThreshold: 0.8,
		DangerTime:      1.0,
	}
}

// Threat is one incoming object judged dangerous by the last scan.
type Threat struct {
	SourceID     uint32
	Position     cp.Vector
	Velocity     cp.Vector
	TimeToImpact float64
	Level        float64 // 1 - tti/DangerTime, in [0, 1]
	Dodge        cp.Vector
}

// ThreatDetector periodically scans for fast objects heading at its owner
// and suggests a sidestep. It never moves the owner itself.
type ThreatDetector struct {
	self    *model.Character
	world   *world.World
	cfg     ThreatConfig
	timer   float64
	threats []Threat
}

// NewThreatDetector creates a detector for self. The first scan happens on
// the first Tick.
func NewThreatDetector(self *model.Character, w *world.World, cfg ThreatConfig) *ThreatDetector {
	return &ThreatDetector{self: self, world: w, cfg: cfg}
}

// Config returns the detector tuning.
func (d *ThreatDetector) Config() ThreatConfig {
	return d.cfg
}

// Tick counts down the scan interval and rescans when it elapses.
func (d *ThreatDetector) Tick(dt float64) {
	d.timer -= dt
	if !model.TimerElapsed(d.timer) {
		return
	}
	d.timer = d.cfg.ScanInterval
	d.Scan()
}

// Scan rebuilds the threat list immediately.
func (d *ThreatDetector) Scan() {
	d.threats = d.threats[:0]
	if d.self.IsDead() {
		return
	}

	selfPos := d.self.Position()
	d.world.QueryRadius(selfPos, d.cfg.ScanRadius, func(obj *model.WorldObject) bool {
		if obj.ObjectID() == d.self.ObjectID() || obj.Team() == d.self.Team() {
			return true
		}
		if t, ok := d.assess(selfPos, obj); ok {
			d.threats = append(d.threats, t)
		}
		return true
	})

	if len(d.threats) > 0 && IsDebugEnabled() {
		slog.Debug("threats detected",
			"objectID", d.self.ObjectID(),
			"count", len(d.threats))
	}
}

func (d *ThreatDetector) assess(selfPos cp.Vector, obj *model.WorldObject) (Threat, bool) {
	vel := obj.Velocity()
	speed := vel.Length()
	if speed < d.cfg.MinThreatSpeed || speed == 0 {
		return Threat{}, false
	}
	heading := vel.Mult(1 / speed)

	toSelf := selfPos.Sub(obj.Position())
	dist := toSelf.Length()
	if dist > 1e-9 && heading.Dot(toSelf.Mult(1/dist)) < d.cfg.AimDotThreshold {
		return Threat{}, false
	}

	tti := dist / speed
	if tti > d.cfg.DangerTime {
		return Threat{}, false
	}

	// Closest point of the trajectory to self.
	impact := obj.Position().Add(heading.Mult(heading.Dot(toSelf)))
	dodge := heading.Perp()
	if away := selfPos.Sub(impact); dodge.Dot(away) < 0 {
		dodge = dodge.Neg()
	}

	level := 1.0
	if d.cfg.DangerTime > 0 {
		level = 1 - tti/d.cfg.DangerTime
	}
	return Threat{
		SourceID:     obj.ObjectID(),
		Position:     obj.Position(),
		Velocity:     vel,
		TimeToImpact: tti,
		Level:        math.Max(0, math.Min(1, level)),
		Dodge:        dodge,
	}, true
}

// Threats returns a copy of the last scan result.
func (d *ThreatDetector) Threats() []Threat {
	return slices.Clone(d.threats)
}

// HasThreats reports whether the last scan found anything.
func (d *ThreatDetector) HasThreats() bool {
	return len(d.threats) > 0
}

// DodgeVector returns the threat-level weighted average of all dodge
// directions, normalized. Zero when there is nothing to dodge.
func (d *ThreatDetector) DodgeVector() cp.Vector {
	var sum cp.Vector
	weight := 0.0
	for _, t := range d.threats {
		sum = sum.Add(t.Dodge.Mult(t.Level))
		weight += t.Level
	}
	if weight <= 0 {
		// Every threat is at the edge of DangerTime: plain average.
		for _, t := range d.threats {
			sum = sum.Add(t.Dodge)
		}
	} else {
		sum = sum.Mult(1 / weight)
	}

	l := sum.Length()
	if l < 1e-9 {
		return cp.Vector{}
	}
	return sum.Mult(1 / l)
}

// ShouldDodgeNow reports whether any threat lands within reactionTime.
func (d *ThreatDetector) ShouldDodgeNow(reactionTime float64) bool {
	for _, t := range d.threats {
		if t.TimeToImpact <= reactionTime {
			return true
		}
	}
	return false
}
