package sim

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/meteor-shooter/internal/loop/config"
	"github.com/tomz197/meteor-shooter/internal/object"
)

// Config holds the fixed parameters of a simulation.
type Config struct {
	Field       object.Field
	RunDuration time.Duration
	Seed        int64         // 0 seeds from the current time
	Tuning      object.Tuning // Zero value uses object.DefaultTuning
}

// DefaultConfig returns the standard 800x600, 60-second game.
func DefaultConfig() Config {
	return Config{
		Field:       object.Field{Width: config.FieldWidth, Height: config.FieldHeight},
		RunDuration: config.RunDuration,
		Tuning:      object.DefaultTuning(),
	}
}

// Intents is the per-frame snapshot of held controls plus the discrete restart signal.
// Held controls are re-applied every frame they are present.
type Intents struct {
	Left    bool
	Right   bool
	Fire    bool
	Restart bool
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithLogger sets the logger used for run transitions.
func WithLogger(logger *log.Logger) Option {
	return func(s *Simulation) {
		if logger != nil {
			s.log = logger
		}
	}
}

// Simulation advances the game one frame at a time.
// It is not safe for concurrent use; each game session owns its own Simulation.
type Simulation struct {
	cfg       Config
	world     *WorldState
	clock     *Clock
	scheduler *object.SpawnScheduler
	resolver  *CollisionResolver
	log       *log.Logger
	now       time.Time // Time of the last frame
	endedAt   time.Time // Frame on which the run ended
}

// New creates an active simulation whose run starts at now.
func New(cfg Config, now time.Time, opts ...Option) *Simulation {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	if cfg.Tuning == (object.Tuning{}) {
		cfg.Tuning = object.DefaultTuning()
	}

	s := &Simulation{
		cfg:       cfg,
		world:     NewWorldState(cfg.Field, cfg.Tuning),
		clock:     NewClock(now, cfg.RunDuration),
		scheduler: object.NewSpawnScheduler(rng, now, cfg.Tuning),
		resolver:  NewCollisionResolver(cfg.Field, rng),
		log:       log.New(io.Discard),
		now:       now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current run phase.
func (s *Simulation) State() State {
	return s.world.State
}

// Score returns the current score.
func (s *Simulation) Score() int {
	return s.world.Score
}

// Restart discards the current run and starts a fresh one at now.
func (s *Simulation) Restart(now time.Time) {
	s.world.Reset()
	s.clock.Reset(now)
	s.scheduler.Reset(now)
	s.now = now
	s.endedAt = time.Time{}
	s.log.Debug("run restarted")
}

// Step advances the simulation by one frame and returns what the renderer should show.
// now is sampled once by the caller and used for every timer in the frame.
//
// Frame order: input, spawning, motion, explosions, collisions, end-of-run check.
// Spawning, motion and collisions only run while the game is active.
func (s *Simulation) Step(now time.Time, in Intents) Snapshot {
	s.now = now
	w := s.world

	s.applyInput(now, in)
	wasActive := w.Active()

	if w.Active() {
		s.spawn(now)
		s.updateMotion(now)
	}

	s.updateExplosions(now)

	if w.Active() {
		report := s.resolver.Resolve(w, now)
		if report.Collected {
			s.log.Debug("power-up collected", "kind", report.CollectedKind)
		}
		if report.PlayerHit {
			s.log.Debug("player hit", "lives", w.Player.Lives)
		}
	}

	s.checkEnd(now)
	if wasActive && !w.Active() {
		s.endedAt = now
		s.log.Info("game over",
			"reason", w.EndReason,
			"score", w.Score,
			"elapsed", s.clock.Elapsed(now).Round(time.Millisecond),
		)
	}

	return s.Snapshot()
}

// applyInput handles restart and, while active, movement and firing.
// Left is applied before right, so holding both leaves the ship in place.
func (s *Simulation) applyInput(now time.Time, in Intents) {
	w := s.world
	if in.Restart && !w.Active() {
		s.Restart(now)
	}
	if !w.Active() {
		return
	}

	if in.Left {
		w.Player.Move(object.DirectionLeft, w.Field.Width)
	}
	if in.Right {
		w.Player.Move(object.DirectionRight, w.Field.Width)
	}
	if in.Fire {
		w.Projectiles = append(w.Projectiles, w.Player.Shoot(now)...)
	}
}

func (s *Simulation) spawn(now time.Time) {
	w := s.world
	w.Meteors = append(w.Meteors, s.scheduler.MaybeSpawnMeteors(now, w.Field.Width)...)
	w.PowerUps = append(w.PowerUps, s.scheduler.MaybeSpawnPowerUps(now, w.Field.Width)...)
}

// updateMotion expires power-ups, moves entities and culls the ones that left the field.
func (s *Simulation) updateMotion(now time.Time) {
	w := s.world
	w.Player.Update(now)

	ctx := object.UpdateContext{
		Now:        now,
		Field:      w.Field,
		SpeedScale: 1,
	}
	if w.Player.Active(object.PowerUpTimeSlow, now) {
		ctx.SpeedScale = s.cfg.Tuning.TimeSlowFactor
	}

	w.Projectiles = object.Cull(w.Projectiles, ctx)
	w.Meteors = object.Cull(w.Meteors, ctx)
	w.PowerUps = object.Cull(w.PowerUps, ctx)
}

func (s *Simulation) updateExplosions(now time.Time) {
	w := s.world
	ctx := object.UpdateContext{Now: now, Field: w.Field, SpeedScale: 1}
	w.Explosions = object.Cull(w.Explosions, ctx)
}

// checkEnd ends the run when the clock runs out.
func (s *Simulation) checkEnd(now time.Time) {
	if s.world.Active() && s.clock.Expired(now) {
		s.world.EndGame(EndOutOfTime)
	}
}
