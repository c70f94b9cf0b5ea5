package object

import (
	"time"

	"github.com/tomz197/meteor-shooter/internal/physics"
)

// Direction is a horizontal movement intent.
type Direction int

const (
	DirectionLeft Direction = iota
	DirectionRight
)

// Player is the ship at the bottom of the field.
//
// Power-ups are independent timed capabilities stored as kind → expiry instant.
// A capability is active while now is before its expiry; picking up a kind that
// is already active restarts its timer without stacking.
type Player struct {
	X, Y   float64 // Top-left position
	Width  float64
	Height float64
	Speed  float64 // Units per frame
	Lives  int

	LastShot     time.Time     // Zero until the first shot
	ShotCooldown time.Duration // Base cooldown without rapid fire

	tuning   Tuning
	powerUps map[PowerUpKind]time.Time
}

// NewPlayer creates a ship centered horizontally near the bottom of the field.
func NewPlayer(field Field, tuning Tuning) *Player {
	return &Player{
		X:            field.Width/2 - PlayerWidth/2,
		Y:            field.Height - PlayerBottomOffset,
		Width:        PlayerWidth,
		Height:       PlayerHeight,
		Speed:        tuning.PlayerSpeed,
		Lives:        InitialLives,
		ShotCooldown: tuning.ShotCooldown,
		tuning:       tuning,
		powerUps:     make(map[PowerUpKind]time.Time, len(PowerUpKinds)),
	}
}

// Update clears every power-up whose duration has elapsed.
func (p *Player) Update(now time.Time) {
	for kind, expiry := range p.powerUps {
		if !now.Before(expiry) {
			delete(p.powerUps, kind)
		}
	}
}

// Move shifts the ship one step in the given direction, keeping it inside [0, fieldWidth-Width].
func (p *Player) Move(dir Direction, fieldWidth float64) {
	switch dir {
	case DirectionLeft:
		p.X -= p.Speed
	case DirectionRight:
		p.X += p.Speed
	}
	p.X = physics.Clamp(p.X, 0, fieldWidth-p.Width)
}

// Cooldown returns the effective time between shots at the given instant.
func (p *Player) Cooldown(now time.Time) time.Duration {
	if p.Active(PowerUpRapidFire, now) {
		return p.tuning.RapidFireCooldown
	}
	return p.ShotCooldown
}

// Shoot fires if the cooldown has elapsed and returns the new projectiles.
// Laser takes precedence over triple shot, which takes precedence over a single bullet.
func (p *Player) Shoot(now time.Time) []*Projectile {
	if !p.LastShot.IsZero() && now.Sub(p.LastShot) <= p.Cooldown(now) {
		return nil
	}
	p.LastShot = now

	cx := p.X + p.Width/2
	mega := p.Active(PowerUpMegaBullets, now)

	switch {
	case p.Active(PowerUpLaser, now):
		return []*Projectile{NewLaser(cx, p.Y, now)}
	case p.Active(PowerUpTripleShot, now):
		return []*Projectile{
			NewBullet(cx, p.Y, 0, mega),
			NewBullet(cx, p.Y, -TripleShotSpread, mega),
			NewBullet(cx, p.Y, TripleShotSpread, mega),
		}
	default:
		return []*Projectile{NewBullet(cx, p.Y, 0, mega)}
	}
}

// Activate turns on a power-up at now, restarting its timer if it was already active.
func (p *Player) Activate(kind PowerUpKind, now time.Time) {
	p.powerUps[kind] = now.Add(p.tuning.Duration(kind))
}

// Active reports whether the power-up is active at now.
func (p *Player) Active(kind PowerUpKind, now time.Time) bool {
	expiry, ok := p.powerUps[kind]
	return ok && now.Before(expiry)
}

// Remaining returns how long the power-up stays active, or zero if it is off.
func (p *Player) Remaining(kind PowerUpKind, now time.Time) time.Duration {
	if !p.Active(kind, now) {
		return 0
	}
	return p.powerUps[kind].Sub(now)
}

// ActivePowerUps returns the active kinds in display order.
func (p *Player) ActivePowerUps(now time.Time) []PowerUpKind {
	var active []PowerUpKind
	for _, kind := range PowerUpKinds {
		if p.Active(kind, now) {
			active = append(active, kind)
		}
	}
	return active
}

// LoseLife removes one life, never going below zero.
func (p *Player) LoseLife() {
	if p.Lives > 0 {
		p.Lives--
	}
}

// Bounds returns the ship's collision rectangle.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Center returns the ship's center position.
func (p *Player) Center() (float64, float64) {
	return p.Bounds().Center()
}
