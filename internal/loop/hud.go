package loop

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/meteor-shooter/internal/draw"
	"github.com/tomz197/meteor-shooter/internal/loop/config"
	"github.com/tomz197/meteor-shooter/internal/object"
	"github.com/tomz197/meteor-shooter/internal/sim"
)

var powerUpColors = map[object.PowerUpKind]string{
	object.PowerUpRapidFire:   draw.ColorYellow,
	object.PowerUpShield:      draw.ColorBrightCyan,
	object.PowerUpDoubleScore: draw.ColorBrightGreen,
	object.PowerUpTripleShot:  draw.ColorYellow,
	object.PowerUpLaser:       draw.ColorRed,
	object.PowerUpTimeSlow:    draw.ColorBrightCyan,
	object.PowerUpMegaBullets: draw.ColorRed,
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// text writes s at the 1-based canvas cell (col, row) and marks the cells so
// the canvas repaints them next frame.
func (g *Game) text(col, row int, s string) {
	g.coloredText(col, row, "", s)
}

func (g *Game) coloredText(col, row int, color, s string) {
	if row < 1 || row > g.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	if color != "" {
		g.out.WriteAt(col, row, color+s+draw.ColorReset)
	} else {
		g.out.WriteAt(col, row, s)
	}
	g.canvas.MarkTextDirty(col, row, utf8.RuneCountInString(s))
}

func (g *Game) centered(row int, s string) {
	g.text((g.canvas.TerminalWidth()-utf8.RuneCountInString(s))/2+1, row, s)
}

// drawHUD draws score, time, lives and the active power-ups.
func (g *Game) drawHUD(s sim.Snapshot) {
	width := g.canvas.TerminalWidth()

	g.text(2, 1, fmt.Sprintf("Score: %d", s.Score))
	g.centered(1, fmt.Sprintf("Time: %d", wholeSeconds(s.Remaining)))

	lives := hearts(s.Player.Lives)
	g.coloredText(width-utf8.RuneCountInString(lives), 1, draw.ColorRed, lives)

	for i, a := range s.Player.PowerUps {
		label := fmt.Sprintf("%s %.1fs", a.Kind, a.Remaining.Seconds())
		g.coloredText(2, 2+i, powerUpColors[a.Kind], label)
	}
}

// drawGameOver overlays the final result on the frozen field.
func (g *Game) drawGameOver(s sim.Snapshot, now time.Time) {
	top := g.canvas.TerminalHeight()/2 - 4
	for i, line := range gameOverArt {
		g.centered(top+i, line)
	}

	reason := "Time's up!"
	if s.EndReason == sim.EndOutOfLives {
		reason = "Out of lives"
	}
	g.centered(top+len(gameOverArt)+1, reason)
	g.centered(top+len(gameOverArt)+2, fmt.Sprintf("Final score: %d", s.Score))

	if blinkPhase(now) {
		g.centered(top+len(gameOverArt)+4, "R to restart, Q to quit")
	}
}

// drawTitleScreen shows the controls before the first run.
func (g *Game) drawTitleScreen(now time.Time) {
	top := g.canvas.TerminalHeight()/2 - 6

	g.centered(top, "M E T E O R   S H O O T E R")
	g.centered(top+1, fmt.Sprintf("~ survive %d seconds ~", int(config.RunDuration.Seconds())))

	controls := []string{
		"A D / < >  . . . .  Move",
		"SPACE  . . . . . .  Shoot",
		"R  . . . . . . .  Restart",
		"Q  . . . . . . . . . Quit",
	}
	g.centered(top+3, "Controls")
	for i, line := range controls {
		g.centered(top+4+i, line)
	}

	if blinkPhase(now) {
		g.centered(top+5+len(controls), ">>  Press SPACE to Start  <<")
	}
}

func blinkPhase(now time.Time) bool {
	return now.UnixMilli()/600%2 == 0
}

// wholeSeconds rounds up so the counter shows 60 at the start and 0 only at the end.
func wholeSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

func hearts(lives int) string {
	lives = min(max(lives, 0), object.InitialLives)
	return strings.Repeat("♥", lives) + strings.Repeat("♡", object.InitialLives-lives)
}
