// Package world is the spatial registry of one arena session: a uniform
// region grid over the arena bounds plus an id index.
package world

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jakecoffman/cp"

	"github.com/udisondev/encounter/internal/model"
)

// ErrDuplicateObject is returned by Add for an id that is already present.
var ErrDuplicateObject = errors.New("object already in world")

// World represents one arena with a 2D region grid.
// Owned by a single simulation; not safe for concurrent use.
type World struct {
	grid    grid
	regions [][]*Region // [cols][rows]
	objects map[uint32]*entry
	ids     *ObjectIDGenerator
}

// New creates a world covering bounds, split into square regions of
// regionSize units.
func New(bounds cp.BB, regionSize float64) *World {
	g := newGrid(bounds, regionSize)
	w := &World{
		grid:    g,
		regions: make([][]*Region, g.cols),
		objects: make(map[uint32]*entry),
		ids:     NewObjectIDGenerator(),
	}
	for rx := range g.cols {
		w.regions[rx] = make([]*Region, g.rows)
		for ry := range g.rows {
			w.regions[rx][ry] = newRegion(rx, ry)
		}
	}
	return w
}

// Bounds returns the arena rectangle.
func (w *World) Bounds() cp.BB {
	return w.grid.bounds
}

// IDs returns the id generator of this world.
func (w *World) IDs() *ObjectIDGenerator {
	return w.ids
}

// RegionCount returns the total number of regions.
func (w *World) RegionCount() int {
	return w.grid.cols * w.grid.rows
}

// GetRegion returns the region containing p (clamped to the bounds).
func (w *World) GetRegion(p cp.Vector) *Region {
	rx, ry := w.grid.coordToIndex(p)
	return w.regions[rx][ry]
}

// GetRegionByIndex returns region (rx, ry), nil if out of range.
func (w *World) GetRegionByIndex(rx, ry int) *Region {
	if !w.grid.isValidIndex(rx, ry) {
		return nil
	}
	return w.regions[rx][ry]
}

// Contains reports whether p lies inside the arena bounds.
func (w *World) Contains(p cp.Vector) bool {
	return w.grid.bounds.ContainsVect(p)
}

// ClampToBounds returns p moved inside the arena bounds.
func (w *World) ClampToBounds(p cp.Vector) cp.Vector {
	return w.grid.bounds.ClampVect(&p)
}

// AddObject adds obj to the world and its region.
func (w *World) AddObject(obj *model.WorldObject) error {
	if _, ok := w.objects[obj.ObjectID()]; ok {
		return fmt.Errorf("adding object %d: %w", obj.ObjectID(), ErrDuplicateObject)
	}
	if !w.Contains(obj.Position()) {
		slog.Warn("object added outside arena bounds, indexing in border region",
			"objectID", obj.ObjectID(),
			"x", obj.Position().X,
			"y", obj.Position().Y)
	}

	e := &entry{obj: obj}
	w.objects[obj.ObjectID()] = e
	w.GetRegion(obj.Position()).add(e)
	return nil
}

// RemoveObject removes an object from the world and its region.
func (w *World) RemoveObject(objectID uint32) {
	e, ok := w.objects[objectID]
	if !ok {
		return
	}
	delete(w.objects, objectID)
	if e.region != nil {
		e.region.remove(e)
	}
}

// GetObject returns an object by id.
func (w *World) GetObject(objectID uint32) (*model.WorldObject, bool) {
	e, ok := w.objects[objectID]
	if !ok {
		return nil, false
	}
	return e.obj, true
}

// GetCharacter returns a character by id.
func (w *World) GetCharacter(objectID uint32) (*model.Character, bool) {
	obj, ok := w.GetObject(objectID)
	if !ok {
		return nil, false
	}
	c, ok := obj.Data.(*model.Character)
	return c, ok
}

// ObjectCount returns the number of objects in the world.
func (w *World) ObjectCount() int {
	return len(w.objects)
}

// MoveObject sets the position of a registered object and re-indexes it
// if it crossed a region border. Unknown objects are just moved.
func (w *World) MoveObject(obj *model.WorldObject, p cp.Vector) {
	obj.SetPosition(p)

	e, ok := w.objects[obj.ObjectID()]
	if !ok {
		return
	}
	next := w.GetRegion(p)
	if e.region == next {
		return
	}
	if e.region != nil {
		e.region.remove(e)
	}
	next.add(e)
}

// ForEachObject iterates every object, region by region.
// If fn returns false, iteration stops.
func (w *World) ForEachObject(fn func(*model.WorldObject) bool) {
	for rx := range w.grid.cols {
		for ry := range w.grid.rows {
			if !w.regions[rx][ry].forEach(fn) {
				return
			}
		}
	}
}

// QueryRadius calls fn for every active object whose collision circle
// touches the circle (center, radius). Iteration order is deterministic.
// If fn returns false, iteration stops.
func (w *World) QueryRadius(center cp.Vector, radius float64, fn func(*model.WorldObject) bool) {
	// Regions are searched with a margin so that large objects indexed by
	// their center in a neighbor region are not missed.
	margin := radius + w.grid.regionSize
	minX, minY := w.grid.coordToIndex(cp.Vector{X: center.X - margin, Y: center.Y - margin})
	maxX, maxY := w.grid.coordToIndex(cp.Vector{X: center.X + margin, Y: center.Y + margin})

	for rx := minX; rx <= maxX; rx++ {
		for ry := minY; ry <= maxY; ry++ {
			cont := w.regions[rx][ry].forEach(func(obj *model.WorldObject) bool {
				if !obj.IsActive() {
					return true
				}
				reach := radius + obj.Radius()
				if center.DistanceSq(obj.Position()) > reach*reach {
					return true
				}
				return fn(obj)
			})
			if !cont {
				return
			}
		}
	}
}

// CharactersInRadius returns live characters touching the circle.
func (w *World) CharactersInRadius(center cp.Vector, radius float64) []*model.Character {
	var out []*model.Character
	w.QueryRadius(center, radius, func(obj *model.WorldObject) bool {
		if c, ok := obj.Data.(*model.Character); ok && !c.IsDead() {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Reset removes every object. Used between encounters and in tests.
func (w *World) Reset() {
	for _, col := range w.regions {
		for _, r := range col {
			clear(r.objects)
			r.objects = r.objects[:0]
		}
	}
	clear(w.objects)
	slog.Debug("world reset")
}
