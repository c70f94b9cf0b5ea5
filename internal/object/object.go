// Package object defines the simulation entities: the player ship, projectiles,
// meteors, power-up capsules and explosions, plus the spawn scheduler.
package object

import (
	"time"

	"github.com/tomz197/meteor-shooter/internal/physics"
)

// Field is the rectangular play area in logical units.
type Field struct {
	Width  float64
	Height float64
}

// UpdateContext provides all the information an entity needs during update.
// Now is sampled once per frame and shared by every entity.
type UpdateContext struct {
	Now        time.Time
	Field      Field
	SpeedScale float64 // Motion multiplier for meteors and bullets (time slow)
}

// Entity is an updatable simulation object with a collision footprint.
type Entity interface {
	// Update advances the entity by one frame.
	Update(ctx UpdateContext)

	// Bounds returns the collision rectangle. Empty for cosmetic entities.
	Bounds() physics.Rect

	// Expired reports whether the entity left the field or outlived its lifetime.
	Expired(ctx UpdateContext) bool
}

// Destructible is implemented by entities that can be destroyed by a collision.
type Destructible interface {
	// MarkDestroyed marks the entity for removal at the end of the current pass.
	MarkDestroyed()
	// IsDestroyed returns true if the entity is marked for destruction.
	IsDestroyed() bool
}

// Compact removes destroyed entities in place and returns the shortened slice.
// Order of the survivors is preserved.
func Compact[T Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}

// Cull updates every entity and removes the ones that expired this frame.
func Cull[T Entity](items []T, ctx UpdateContext) []T {
	kept := items[:0]
	for _, it := range items {
		it.Update(ctx)
		if !it.Expired(ctx) {
			kept = append(kept, it)
		}
	}
	clear(items[len(kept):])
	return kept
}
