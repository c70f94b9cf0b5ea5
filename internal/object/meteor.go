package object

import (
	"math/rand"

	"github.com/tomz197/meteor-shooter/internal/physics"
)

// MeteorSize represents the size class of a meteor.
// Explosions reuse it for their particle count.
type MeteorSize int

const (
	MeteorSmall MeteorSize = iota
	MeteorLarge
)

func (s MeteorSize) String() string {
	if s == MeteorLarge {
		return "large"
	}
	return "small"
}

// Size properties for each meteor class.
var meteorDimensions = map[MeteorSize]float64{
	MeteorSmall: SmallMeteorSize,
	MeteorLarge: LargeMeteorSize,
}

// Meteor is a falling rock.
type Meteor struct {
	X, Y          float64    // Top-left position
	W, H          float64    // Collision box
	Speed         float64    // Units per frame
	Rotation      float64    // Visual only, degrees
	RotationSpeed float64    // Degrees per frame
	Size          MeteorSize // Size class
	Points        int        // Score for destroying it
	destroyed     bool
}

// NewMeteor creates a meteor at (x, y) with a random speed drawn from speeds.
func NewMeteor(x, y float64, size MeteorSize, speeds SpeedRange, rng *rand.Rand) *Meteor {
	dim := meteorDimensions[size]

	return &Meteor{
		X:             x,
		Y:             y,
		W:             dim,
		H:             dim,
		Speed:         uniform(rng, speeds.Min, speeds.Max),
		RotationSpeed: uniform(rng, -MeteorRotationSpeed, MeteorRotationSpeed),
		Size:          size,
		Points:        MeteorPoints,
	}
}

// Update moves the meteor down and spins it.
func (m *Meteor) Update(ctx UpdateContext) {
	m.Y += m.Speed * ctx.SpeedScale
	m.Rotation += m.RotationSpeed * ctx.SpeedScale
}

// Bounds returns the meteor's collision rectangle.
func (m *Meteor) Bounds() physics.Rect {
	return physics.Rect{X: m.X, Y: m.Y, W: m.W, H: m.H}
}

// Center returns the meteor's center position.
func (m *Meteor) Center() (float64, float64) {
	return m.Bounds().Center()
}

// Expired reports whether the meteor fell past the bottom edge.
func (m *Meteor) Expired(ctx UpdateContext) bool {
	return m.Y > ctx.Field.Height
}

// MarkDestroyed marks the meteor for removal.
func (m *Meteor) MarkDestroyed() {
	m.destroyed = true
}

// IsDestroyed returns true if the meteor is marked for destruction.
func (m *Meteor) IsDestroyed() bool {
	return m.destroyed
}

// uniform returns a random float in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
