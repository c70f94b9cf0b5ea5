package loop

import (
	"time"

	"github.com/tomz197/meteor-shooter/internal/draw"
	"github.com/tomz197/meteor-shooter/internal/loop/config"
	"github.com/tomz197/meteor-shooter/internal/object"
	"github.com/tomz197/meteor-shooter/internal/sim"
)

// Meteor outlines: large rocks get more sides than small ones.
const (
	largeMeteorSides = 7
	smallMeteorSides = 5
)

// drawFrame draws the current frame and flushes it.
func (g *Game) drawFrame(now time.Time) error {
	if g.redraw {
		draw.ClearScreen(g.out)
		g.canvas.ForceRedraw()
		g.canvas.RenderBorder(g.out)
		g.redraw = false
	}

	g.canvas.Clear()
	if g.screen == screenPlaying {
		g.drawWorld(g.snapshot)
	}
	g.canvas.Render(g.out)

	switch g.screen {
	case screenTitle:
		g.drawTitleScreen(now)
	case screenPlaying:
		g.drawHUD(g.snapshot)
		if g.snapshot.State == sim.StateGameOver {
			g.drawGameOver(g.snapshot, now)
		}
	}

	return g.out.Flush()
}

// drawWorld rasterizes every entity in the snapshot onto the canvas.
func (g *Game) drawWorld(s sim.Snapshot) {
	c := g.canvas

	for _, m := range s.Meteors {
		sides := largeMeteorSides
		if m.Size == object.MeteorSmall {
			sides = smallMeteorSides
		}
		cx, cy := m.Bounds.Center()
		pts := draw.RegularPolygon(c.BorrowPoints(sides), cx, cy, m.Bounds.W/2, m.Rotation)
		c.DrawPolygon(pts, false)
	}

	for _, p := range s.Projectiles {
		c.FillRect(p.Bounds.X, p.Bounds.Y, p.Bounds.W, p.Bounds.H)
	}

	for _, p := range s.PowerUps {
		b := p.Bounds
		cx, cy := b.Center()
		pts := c.BorrowPoints(4)
		pts[0] = draw.Point{X: cx, Y: b.Y}
		pts[1] = draw.Point{X: b.Right(), Y: cy}
		pts[2] = draw.Point{X: cx, Y: b.Bottom()}
		pts[3] = draw.Point{X: b.X, Y: cy}
		c.DrawPolygon(pts, glowOn(p.Glow))
	}

	for _, p := range s.Particles {
		c.SetFloat(p.X, p.Y)
	}

	var shield time.Duration
	for _, a := range s.Player.PowerUps {
		if a.Kind == object.PowerUpShield {
			shield = a.Remaining
		}
	}
	if shouldRenderBlink(shield, config.PlayerBlinkFrequency) {
		g.drawShip(s.Player)
	}
}

// drawShip draws the player as an arrowhead pointing up.
func (g *Game) drawShip(p sim.PlayerView) {
	b := p.Bounds
	cx := b.X + b.W/2
	pts := g.canvas.BorrowPoints(4)
	pts[0] = draw.Point{X: cx, Y: b.Y}
	pts[1] = draw.Point{X: b.Right(), Y: b.Bottom()}
	pts[2] = draw.Point{X: cx, Y: b.Y + b.H*0.7}
	pts[3] = draw.Point{X: b.X, Y: b.Bottom()}
	g.canvas.DrawPolygon(pts, true)
}

// glowOn pulses capsules between filled and outlined every few frames.
func glowOn(glow int) bool {
	return glow/8%2 == 0
}

// shouldRenderBlink reports whether a blinking object is visible.
// remaining is the time left on the effect; zero means no blinking.
func shouldRenderBlink(remaining time.Duration, frequency float64) bool {
	if remaining <= 0 {
		return true
	}
	return int(remaining.Seconds()*frequency*2)%2 == 0
}
