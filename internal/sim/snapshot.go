package sim

import (
	"time"

	"github.com/tomz197/meteor-shooter/internal/object"
	"github.com/tomz197/meteor-shooter/internal/physics"
)

// Snapshot is an immutable copy of the world for rendering.
// It shares no memory with the simulation.
type Snapshot struct {
	State       State
	EndReason   EndReason
	Score       int
	Remaining   time.Duration
	Field       object.Field
	Player      PlayerView
	Projectiles []ProjectileView
	Meteors     []MeteorView
	PowerUps    []PowerUpView
	Particles   []ParticleView
}

// PlayerView is the renderable state of the ship.
type PlayerView struct {
	Bounds   physics.Rect
	Lives    int
	PowerUps []ActivePowerUp // Display order
}

// Shielded reports whether the shield is among the active power-ups.
func (p PlayerView) Shielded() bool {
	for _, a := range p.PowerUps {
		if a.Kind == object.PowerUpShield {
			return true
		}
	}
	return false
}

// ActivePowerUp is an active capability with its remaining time.
type ActivePowerUp struct {
	Kind      object.PowerUpKind
	Remaining time.Duration
}

// ProjectileView is the renderable state of a bullet or laser.
type ProjectileView struct {
	Kind   object.ProjectileKind
	Bounds physics.Rect
	Mega   bool
}

// MeteorView is the renderable state of a meteor.
type MeteorView struct {
	Bounds   physics.Rect
	Size     object.MeteorSize
	Rotation float64 // Degrees
}

// PowerUpView is the renderable state of a capsule.
type PowerUpView struct {
	Bounds physics.Rect
	Kind   object.PowerUpKind
	Glow   int
}

// ParticleView is one explosion fragment.
type ParticleView struct {
	X, Y    float64
	Life    int
	MaxLife int
}

// Snapshot returns the world as of the last frame.
func (s *Simulation) Snapshot() Snapshot {
	w := s.world
	now := s.now

	snap := Snapshot{
		State:       w.State,
		EndReason:   w.EndReason,
		Score:       w.Score,
		Remaining:   s.clock.Remaining(now),
		Field:       w.Field,
		Projectiles: make([]ProjectileView, 0, len(w.Projectiles)),
		Meteors:     make([]MeteorView, 0, len(w.Meteors)),
		PowerUps:    make([]PowerUpView, 0, len(w.PowerUps)),
	}
	if !w.Active() && !s.endedAt.IsZero() {
		snap.Remaining = s.clock.Remaining(s.endedAt)
	}

	snap.Player = PlayerView{
		Bounds: w.Player.Bounds(),
		Lives:  w.Player.Lives,
	}
	for _, kind := range w.Player.ActivePowerUps(now) {
		snap.Player.PowerUps = append(snap.Player.PowerUps, ActivePowerUp{
			Kind:      kind,
			Remaining: w.Player.Remaining(kind, now),
		})
	}

	for _, p := range w.Projectiles {
		snap.Projectiles = append(snap.Projectiles, ProjectileView{Kind: p.Kind, Bounds: p.Bounds(), Mega: p.Mega})
	}
	for _, m := range w.Meteors {
		snap.Meteors = append(snap.Meteors, MeteorView{Bounds: m.Bounds(), Size: m.Size, Rotation: m.Rotation})
	}
	for _, p := range w.PowerUps {
		snap.PowerUps = append(snap.PowerUps, PowerUpView{Bounds: p.Bounds(), Kind: p.Kind, Glow: p.Glow})
	}
	for _, e := range w.Explosions {
		for _, p := range e.Particles {
			snap.Particles = append(snap.Particles, ParticleView{X: p.X, Y: p.Y, Life: p.Life, MaxLife: p.MaxLife})
		}
	}

	return snap
}
