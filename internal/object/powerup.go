package object

import (
	"math/rand"

	"github.com/tomz197/meteor-shooter/internal/physics"
)

// PowerUpKind identifies one of the timed player capabilities.
type PowerUpKind int

const (
	PowerUpRapidFire PowerUpKind = iota
	PowerUpShield
	PowerUpDoubleScore
	PowerUpTripleShot
	PowerUpLaser
	PowerUpTimeSlow
	PowerUpMegaBullets

	powerUpKindCount // must stay last
)

// PowerUpKinds lists every kind in display order.
var PowerUpKinds = []PowerUpKind{
	PowerUpRapidFire,
	PowerUpShield,
	PowerUpDoubleScore,
	PowerUpTripleShot,
	PowerUpLaser,
	PowerUpTimeSlow,
	PowerUpMegaBullets,
}

var powerUpNames = [powerUpKindCount]string{
	PowerUpRapidFire:   "RAPID FIRE",
	PowerUpShield:      "SHIELD",
	PowerUpDoubleScore: "DOUBLE SCORE",
	PowerUpTripleShot:  "TRIPLE SHOT",
	PowerUpLaser:       "LASER BEAM",
	PowerUpTimeSlow:    "TIME SLOW",
	PowerUpMegaBullets: "MEGA BULLETS",
}

func (k PowerUpKind) String() string {
	if k < 0 || k >= powerUpKindCount {
		return "UNKNOWN"
	}
	return powerUpNames[k]
}

// PowerUp is a falling capsule the player can collect.
type PowerUp struct {
	X, Y      float64 // Top-left position
	W, H      float64
	Speed     float64 // Units per frame, unaffected by time slow
	Kind      PowerUpKind
	Glow      int // Frames alive, drives the renderer's pulse
	destroyed bool
}

// NewPowerUp creates a capsule of a uniformly random kind at (x, y).
func NewPowerUp(x, y float64, rng *rand.Rand) *PowerUp {
	return &PowerUp{
		X:     x,
		Y:     y,
		W:     PowerUpSize,
		H:     PowerUpSize,
		Speed: PowerUpSpeed,
		Kind:  PowerUpKinds[rng.Intn(len(PowerUpKinds))],
	}
}

// Update moves the capsule down.
func (p *PowerUp) Update(_ UpdateContext) {
	p.Y += p.Speed
	p.Glow++
}

// Bounds returns the capsule's collision rectangle.
func (p *PowerUp) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Expired reports whether the capsule fell past the bottom edge.
func (p *PowerUp) Expired(ctx UpdateContext) bool {
	return p.Y > ctx.Field.Height
}

// MarkDestroyed marks the capsule for removal.
func (p *PowerUp) MarkDestroyed() {
	p.destroyed = true
}

// IsDestroyed returns true if the capsule was collected.
func (p *PowerUp) IsDestroyed() bool {
	return p.destroyed
}
