package object

import (
	"math"
	"time"

	"github.com/tomz197/meteor-shooter/internal/physics"
)

// ProjectileKind distinguishes regular bullets from the laser beam.
type ProjectileKind int

const (
	ProjectileBullet ProjectileKind = iota
	ProjectileLaser
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectileBullet:
		return "bullet"
	case ProjectileLaser:
		return "laser"
	default:
		return "unknown"
	}
}

// Projectile is a shot fired by the player.
// Bullets travel along a fixed velocity and die on leaving the field or on impact.
// A laser is a stationary beam that lives for a fixed time and survives its hits.
type Projectile struct {
	Kind      ProjectileKind
	X, Y      float64 // Top-left position
	W, H      float64
	VX, VY    float64 // Units per frame, derived once from Angle and Speed
	Angle     float64 // Launch angle in degrees, 0 = straight up, positive = right
	Speed     float64
	Damage    int
	Mega      bool
	CreatedAt time.Time
	Lifetime  time.Duration // Lasers only
	destroyed bool
}

// NewBullet creates a bullet centered on cx with its nose at y.
// Mega bullets double size, speed and damage.
func NewBullet(cx, y, angle float64, mega bool) *Projectile {
	w, h := float64(BulletWidth), float64(BulletHeight)
	speed := BulletSpeed
	damage := BulletDamage
	if mega {
		w *= MegaFactor
		h *= MegaFactor
		speed *= MegaFactor
		damage *= MegaFactor
	}

	rad := angle * math.Pi / 180
	return &Projectile{
		Kind:   ProjectileBullet,
		X:      cx - w/2,
		Y:      y,
		W:      w,
		H:      h,
		VX:     math.Sin(rad) * speed,
		VY:     -math.Cos(rad) * speed,
		Angle:  angle,
		Speed:  speed,
		Damage: damage,
		Mega:   mega,
	}
}

// NewLaser creates a beam centered on cx reaching from the top of the field down to noseY.
func NewLaser(cx, noseY float64, now time.Time) *Projectile {
	return &Projectile{
		Kind:      ProjectileLaser,
		X:         cx - LaserWidth/2,
		Y:         0,
		W:         LaserWidth,
		H:         noseY,
		Damage:    LaserDamage,
		CreatedAt: now,
		Lifetime:  LaserLifetime,
	}
}

// Update moves bullets along their velocity. Lasers don't move.
func (p *Projectile) Update(ctx UpdateContext) {
	if p.Kind == ProjectileLaser {
		return
	}
	p.X += p.VX * ctx.SpeedScale
	p.Y += p.VY * ctx.SpeedScale
}

// Bounds returns the collision rectangle.
func (p *Projectile) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Expired reports whether a bullet left the field or a laser outlived its lifetime.
func (p *Projectile) Expired(ctx UpdateContext) bool {
	if p.Kind == ProjectileLaser {
		return ctx.Now.Sub(p.CreatedAt) > p.Lifetime
	}
	return p.Y < 0 || p.X < 0 || p.X > ctx.Field.Width
}

// Consumable reports whether the projectile is destroyed by its first hit.
func (p *Projectile) Consumable() bool {
	return p.Kind != ProjectileLaser
}

// MarkDestroyed marks the projectile for removal. Lasers ignore it.
func (p *Projectile) MarkDestroyed() {
	if p.Consumable() {
		p.destroyed = true
	}
}

// IsDestroyed returns true if the projectile is marked for destruction.
func (p *Projectile) IsDestroyed() bool {
	return p.destroyed
}
