package world

import "github.com/udisondev/encounter/internal/model"

// Region is one grid cell. Objects are kept in insertion order so that
// iteration, and therefore the simulation, is deterministic.
type Region struct {
	rx, ry  int
	objects []*entry
}

// entry is the grid record of an object: the object plus the region it
// is currently indexed in.
type entry struct {
	obj    *model.WorldObject
	region *Region
}

func newRegion(rx, ry int) *Region {
	return &Region{rx: rx, ry: ry}
}

// RX returns the region column.
func (r *Region) RX() int {
	return r.rx
}

// RY returns the region row.
func (r *Region) RY() int {
	return r.ry
}

// Len returns the number of objects in the region.
func (r *Region) Len() int {
	return len(r.objects)
}

func (r *Region) add(ref *entry) {
	r.objects = append(r.objects, ref)
	ref.region = r
}

func (r *Region) remove(ref *entry) {
	for i, o := range r.objects {
		if o == ref {
			copy(r.objects[i:], r.objects[i+1:])
			r.objects[len(r.objects)-1] = nil
			r.objects = r.objects[:len(r.objects)-1]
			break
		}
	}
	ref.region = nil
}

// forEach iterates the region. If fn returns false, iteration stops and
// forEach returns false.
func (r *Region) forEach(fn func(*model.WorldObject) bool) bool {
	for _, ref := range r.objects {
		if !fn(ref.obj) {
			return false
		}
	}
	return true
}
