package world

import "sync/atomic"

// ObjectIDGenerator generates unique object IDs for all arena entities.
//
// ID ranges (convention):
//
//	0x00000000 - 0x0FFFFFFF: Reserved (0 = environment / no instigator)
//	0x10000000 - 0x1FFFFFFF: Players
//	0x20000000 - 0x2FFFFFFF: Enemies and bosses
//	0x30000000 - 0x3FFFFFFF: Projectiles and hitboxes
type ObjectIDGenerator struct {
	nextPlayerID     atomic.Uint32
	nextEnemyID      atomic.Uint32
	nextProjectileID atomic.Uint32
}

// NewObjectIDGenerator creates a new ID generator.
func NewObjectIDGenerator() *ObjectIDGenerator {
	gen := &ObjectIDGenerator{}
	gen.nextPlayerID.Store(0x10000000)
	gen.nextEnemyID.Store(0x20000000)
	gen.nextProjectileID.Store(0x30000000)
	return gen
}

// NextPlayerID generates next unique player object ID.
func (g *ObjectIDGenerator) NextPlayerID() uint32 {
	return g.nextPlayerID.Add(1)
}

// NextEnemyID generates next unique enemy or boss object ID.
func (g *ObjectIDGenerator) NextEnemyID() uint32 {
	return g.nextEnemyID.Add(1)
}

// NextProjectileID generates next unique projectile or hitbox object ID.
func (g *ObjectIDGenerator) NextProjectileID() uint32 {
	return g.nextProjectileID.Add(1)
}

// IsProjectileID reports whether id belongs to the projectile range.
func IsProjectileID(id uint32) bool {
	return id >= 0x30000000 && id < 0x40000000
}
