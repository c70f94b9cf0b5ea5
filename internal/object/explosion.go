package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/meteor-shooter/internal/physics"
)

// Particle is a single fragment of an explosion.
type Particle struct {
	X, Y    float64 // Position
	VX, VY  float64 // Units per frame
	Life    int     // Frames remaining
	MaxLife int     // Initial life (for fade calculation)
}

// Explosion is a cosmetic burst of particles. It has no collision footprint.
type Explosion struct {
	X, Y      float64
	Size      MeteorSize
	Particles []Particle
	Frames    int // Frames elapsed since creation
}

// NewExplosion creates a burst centered on (x, y): 15 particles for large, 8 for small.
func NewExplosion(x, y float64, size MeteorSize, rng *rand.Rand) *Explosion {
	count := SmallExplosionParticles
	if size == MeteorLarge {
		count = LargeExplosionParticles
	}

	particles := make([]Particle, count)
	for i := range particles {
		angle := rng.Float64() * 2 * math.Pi
		speed := uniform(rng, ParticleMinSpeed, ParticleMaxSpeed)
		life := ParticleMinLife + rng.Intn(ParticleMaxLife-ParticleMinLife+1)
		particles[i] = Particle{
			X:       x,
			Y:       y,
			VX:      math.Cos(angle) * speed,
			VY:      math.Sin(angle) * speed,
			Life:    life,
			MaxLife: life,
		}
	}

	return &Explosion{
		X:         x,
		Y:         y,
		Size:      size,
		Particles: particles,
	}
}

// Update advances the animation and drops spent particles.
// Explosions keep animating while the game is over.
func (e *Explosion) Update(_ UpdateContext) {
	e.Frames++

	kept := e.Particles[:0]
	for _, p := range e.Particles {
		p.X += p.VX
		p.Y += p.VY
		p.Life--
		if p.Life > 0 {
			kept = append(kept, p)
		}
	}
	e.Particles = kept
}

// Bounds returns an empty rectangle; explosions never collide.
func (e *Explosion) Bounds() physics.Rect {
	return physics.Rect{}
}

// Finished reports whether all particles expired and the minimum duration passed.
func (e *Explosion) Finished() bool {
	return e.Frames > ExplosionMinFrames && len(e.Particles) == 0
}

// Expired reports whether the explosion has finished.
func (e *Explosion) Expired(_ UpdateContext) bool {
	return e.Finished()
}
