package sim

import (
	"math/rand"
	"time"

	"github.com/tomz197/meteor-shooter/internal/object"
	"github.com/tomz197/meteor-shooter/internal/physics"
)

// collisionGridCellSize is the cell size for the meteor broad-phase grid.
// Must be >= the largest meteor dimension.
const collisionGridCellSize = object.LargeMeteorSize

// Report summarizes what one collision pass changed.
type Report struct {
	MeteorsDestroyed int
	PointsAwarded    int
	PlayerHit        bool
	Collected        bool
	CollectedKind    object.PowerUpKind
}

// CollisionResolver runs the per-frame collision passes:
// projectiles against meteors, the player against meteors, then the player against power-ups.
// Each pass marks what it destroys and compacts before the next pass starts, so an
// entity destroyed earlier is invisible to later passes.
type CollisionResolver struct {
	rng        *rand.Rand
	meteorGrid *physics.SpatialGrid
}

// NewCollisionResolver creates a resolver for the given field.
func NewCollisionResolver(field object.Field, rng *rand.Rand) *CollisionResolver {
	return &CollisionResolver{
		rng:        rng,
		meteorGrid: physics.NewSpatialGrid(field.Width, field.Height, collisionGridCellSize),
	}
}

// Resolve runs all passes against the world. It does nothing once the game is over.
// Losing the last life ends the game immediately after the player-meteor pass,
// and the power-up pass is skipped for that frame.
func (c *CollisionResolver) Resolve(w *WorldState, now time.Time) Report {
	var r Report
	if !w.Active() {
		return r
	}

	c.resolveProjectileMeteors(w, now, &r)
	c.resolvePlayerMeteors(w, now, &r)

	if w.Player.Lives <= 0 {
		w.EndGame(EndOutOfLives)
		return r
	}

	c.resolvePlayerPowerUps(w, now, &r)
	return r
}

// resolveProjectileMeteors pairs each projectile with at most one meteor.
// Among several overlapping meteors the one earliest in the collection wins.
func (c *CollisionResolver) resolveProjectileMeteors(w *WorldState, now time.Time, r *Report) {
	meteors := w.Meteors
	if len(meteors) == 0 || len(w.Projectiles) == 0 {
		return
	}

	c.meteorGrid.Clear()
	for i, m := range meteors {
		c.meteorGrid.Insert(m.Bounds(), i)
	}

	doubleScore := w.Player.Active(object.PowerUpDoubleScore, now)

	for _, p := range w.Projectiles {
		if p.IsDestroyed() {
			continue
		}
		pr := p.Bounds()

		hit := -1
		c.meteorGrid.QueryRect(pr, func(j int) bool {
			if hit >= 0 && j > hit {
				return false
			}
			m := meteors[j]
			if !m.IsDestroyed() && m.Bounds().Intersects(pr) {
				hit = j
			}
			return false
		})
		if hit < 0 {
			continue
		}

		m := meteors[hit]
		m.MarkDestroyed()
		p.MarkDestroyed()

		cx, cy := m.Center()
		w.Explosions = append(w.Explosions, object.NewExplosion(cx, cy, m.Size, c.rng))

		points := m.Points
		if doubleScore {
			points *= 2
		}
		w.AddScore(points)
		r.MeteorsDestroyed++
		r.PointsAwarded += points
	}

	w.Meteors = object.Compact(w.Meteors)
	w.Projectiles = object.Compact(w.Projectiles)
}

// resolvePlayerMeteors damages the player with the first overlapping meteor.
// At most one meteor hurts the player per frame even when several overlap.
// The hit grants the shield as post-hit invincibility, including on the last life.
func (c *CollisionResolver) resolvePlayerMeteors(w *WorldState, now time.Time, r *Report) {
	player := w.Player
	if player.Active(object.PowerUpShield, now) {
		return
	}

	pb := player.Bounds()
	for _, m := range w.Meteors {
		if !m.Bounds().Intersects(pb) {
			continue
		}
		m.MarkDestroyed()

		cx, cy := player.Center()
		w.Explosions = append(w.Explosions, object.NewExplosion(cx, cy, object.MeteorLarge, c.rng))

		player.LoseLife()
		player.Activate(object.PowerUpShield, now)
		r.PlayerHit = true
		r.MeteorsDestroyed++
		break
	}

	w.Meteors = object.Compact(w.Meteors)
}

// resolvePlayerPowerUps applies the first capsule the player touches.
func (c *CollisionResolver) resolvePlayerPowerUps(w *WorldState, now time.Time, r *Report) {
	player := w.Player
	pb := player.Bounds()
	for _, p := range w.PowerUps {
		if !p.Bounds().Intersects(pb) {
			continue
		}
		player.Activate(p.Kind, now)
		p.MarkDestroyed()
		r.Collected = true
		r.CollectedKind = p.Kind
		break
	}

	w.PowerUps = object.Compact(w.PowerUps)
}
