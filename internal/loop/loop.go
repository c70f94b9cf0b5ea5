// Package loop runs one game session on a terminal: it polls input, steps the
// simulation at a fixed frame rate and renders each snapshot.
package loop

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/meteor-shooter/internal/draw"
	"github.com/tomz197/meteor-shooter/internal/input"
	"github.com/tomz197/meteor-shooter/internal/loop/config"
	"github.com/tomz197/meteor-shooter/internal/sim"
)

// TimeProvider supplies frame timestamps.
type TimeProvider interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Options configures a session.
type Options struct {
	TermSizeFunc draw.TermSizeFunc // Defaults to the size of os.Stdout
	Logger       *log.Logger       // Defaults to discarding output
	Seed         int64             // 0 seeds from the current time
	Time         TimeProvider      // Defaults to the wall clock
	IdleTimeout  time.Duration     // Ends the session after this long without a key press; 0 disables
}

// screen is the frontend phase. The simulation only runs on screenPlaying.
type screen int

const (
	screenTitle screen = iota
	screenPlaying
)

// Game is one terminal session.
type Game struct {
	sim          *sim.Simulation
	input        *input.Stream
	canvas       *draw.Canvas
	out          *draw.ChunkWriter
	termSizeFunc draw.TermSizeFunc
	clock        TimeProvider
	log          *log.Logger
	idleTimeout  time.Duration

	screen    screen
	lastState sim.State
	lastInput time.Time
	snapshot  sim.Snapshot
	redraw    bool // Clear the terminal before the next frame
}

// NewGame creates a session that reads keys from r and renders to w.
func NewGame(r io.Reader, w io.Writer, opts Options) *Game {
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Time == nil {
		opts.Time = wallClock{}
	}

	now := opts.Time.Now()
	cfg := sim.DefaultConfig()
	cfg.Seed = opts.Seed

	termWidth, termHeight, _ := opts.TermSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.FieldWidth, config.FieldHeight)
	canvas.SetOffset(offsetCol, offsetRow)

	return &Game{
		sim:          sim.New(cfg, now, sim.WithLogger(opts.Logger)),
		input:        input.StartStream(r),
		canvas:       canvas,
		out:          draw.NewChunkWriter(w, offsetCol, offsetRow),
		termSizeFunc: opts.TermSizeFunc,
		clock:        opts.Time,
		log:          opts.Logger,
		idleTimeout:  opts.IdleTimeout,
		screen:       screenTitle,
		lastInput:    now,
		redraw:       true,
	}
}

// Run plays a session until the player quits, input ends or ctx is cancelled.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts Options) error {
	g := NewGame(r, w, opts)

	draw.HideCursor(w)
	defer draw.ShowCursor(w)

	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	for ctx.Err() == nil {
		running, err := g.Frame()
		if err != nil {
			return fmt.Errorf("render frame: %w", err)
		}
		if !running {
			g.log.Info("session ended", "score", g.snapshot.Score, "state", g.snapshot.State)
			draw.ClearScreen(w)
			return nil
		}

		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}

	g.log.Info("session interrupted", "score", g.snapshot.Score)
	draw.ClearScreen(w)
	return nil
}

// Frame runs one Input → Step → Draw cycle. It returns false once the session should end.
func (g *Game) Frame() (bool, error) {
	now := g.clock.Now()
	in := g.input.Read(now)

	if len(in.Pressed) > 0 {
		g.lastInput = now
	}
	if in.Quit {
		return false, nil
	}
	if g.idleTimeout > 0 && now.Sub(g.lastInput) > g.idleTimeout {
		g.log.Info("idle timeout", "idle", now.Sub(g.lastInput).Round(time.Second))
		return false, nil
	}

	g.updateScreen()

	switch g.screen {
	case screenTitle:
		if in.Fire || in.Restart {
			g.start(now)
		}
	case screenPlaying:
		g.step(now, in)
	}

	return true, g.drawFrame(now)
}

// start leaves the title screen with a fresh run.
func (g *Game) start(now time.Time) {
	g.input.Reset()
	g.sim.Restart(now)
	g.snapshot = g.sim.Snapshot()
	g.lastState = g.snapshot.State
	g.screen = screenPlaying
	g.redraw = true
	g.log.Debug("run started")
}

func (g *Game) step(now time.Time, in input.Input) {
	g.snapshot = g.sim.Step(now, sim.Intents{
		Left:    in.Left,
		Right:   in.Right,
		Fire:    in.Fire,
		Restart: in.Restart,
	})

	if g.snapshot.State != g.lastState {
		if g.snapshot.State == sim.StateActive {
			g.input.Reset()
		}
		g.lastState = g.snapshot.State
		g.redraw = true
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (g *Game) updateScreen() {
	termWidth, termHeight, err := g.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	c := g.canvas
	if renderWidth != c.TerminalWidth() || renderHeight != c.TerminalHeight() ||
		offsetCol != c.OffsetCol() || offsetRow != c.OffsetRow() {
		g.redraw = true
	}

	c.Resize(renderWidth, renderHeight)
	c.SetOffset(offsetCol, offsetRow)
	g.out.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(max(termWidth, 1), config.MaxTermWidth)
	renderHeight = min(max(termHeight, 1), config.MaxTermHeight)
	offsetCol = max(termWidth-renderWidth, 0) / 2
	offsetRow = max(termHeight-renderHeight, 0) / 2
	return
}
