package ai

import (
	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/game/projectile"
	"github.com/udisondev/encounter/internal/model"
	"github.com/udisondev/encounter/internal/world"
)

// MoveToward steps c toward dest at speed for dt seconds and stops stopDist
// short of it. Returns true once c is within stopDist of dest.
func MoveToward(w *world.World, c *model.Character, dest cp.Vector, stopDist, speed, dt float64) bool {
	pos := c.Position()
	dist := pos.Distance(dest)
	if dist <= stopDist {
		c.SetVelocity(cp.Vector{})
		return true
	}

	step := min(speed*dt, dist-stopDist)
	dir := dest.Sub(pos).Mult(1 / dist)
	Step(w, c, dir, step)
	if dt > 0 {
		c.SetVelocity(dir.Mult(step / dt))
	}
	return dist-step <= stopDist
}

// Step moves c by distance along dir, clamped to the arena bounds.
func Step(w *world.World, c *model.Character, dir cp.Vector, distance float64) {
	dir = projectile.SafeNormalize(dir)
	next := w.ClampToBounds(c.Position().Add(dir.Mult(distance)))
	w.MoveObject(c.WorldObject, next)
}
