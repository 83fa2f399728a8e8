package model

import "github.com/jakecoffman/cp"

// Team groups objects for hostility checks.
type Team int8

const (
	TeamNeutral Team = iota
	TeamPlayer
	TeamEnemy
)

// String returns the team name.
func (t Team) String() string {
	switch t {
	case TeamPlayer:
		return "player"
	case TeamEnemy:
		return "enemy"
	default:
		return "neutral"
	}
}

// IsHostileTo reports whether two teams fight each other.
// Neutral objects are hostile to nobody.
func (t Team) IsHostileTo(other Team) bool {
	return t != TeamNeutral && other != TeamNeutral && t != other
}

// WorldObject: базовый тип для всех объектов арены (персонажи, снаряды).
// Holds identity, position, velocity and a collision radius.
// Data points back at the owning value (*Character, projectile...).
type WorldObject struct {
	objectID uint32
	name     string
	position cp.Vector
	velocity cp.Vector
	radius   float64
	team     Team
	active   bool

	Data any
}

// NewWorldObject creates an active object.
func NewWorldObject(objectID uint32, name string, pos cp.Vector, radius float64, team Team) *WorldObject {
	return &WorldObject{
		objectID: objectID,
		name:     name,
		position: pos,
		radius:   radius,
		team:     team,
		active:   true,
	}
}

// ObjectID returns the unique id (immutable after creation).
func (w *WorldObject) ObjectID() uint32 {
	return w.objectID
}

// Name returns the display name.
func (w *WorldObject) Name() string {
	return w.name
}

// Position returns the current position.
func (w *WorldObject) Position() cp.Vector {
	return w.position
}

// SetPosition moves the object. Callers that keep a spatial index must
// go through world.World.Move instead.
func (w *WorldObject) SetPosition(p cp.Vector) {
	w.position = p
}

// Velocity returns the last known velocity (units per second).
func (w *WorldObject) Velocity() cp.Vector {
	return w.velocity
}

// SetVelocity stores the velocity reported by movement code.
func (w *WorldObject) SetVelocity(v cp.Vector) {
	w.velocity = v
}

// Radius returns the collision radius.
func (w *WorldObject) Radius() float64 {
	return w.radius
}

// Team returns the team.
func (w *WorldObject) Team() Team {
	return w.team
}

// IsActive reports whether the object still takes part in queries.
func (w *WorldObject) IsActive() bool {
	return w.active
}

// SetActive toggles participation in queries.
func (w *WorldObject) SetActive(v bool) {
	w.active = v
}

// DistanceSquared returns the squared distance to another object.
func (w *WorldObject) DistanceSquared(other *WorldObject) float64 {
	return w.position.DistanceSq(other.position)
}
