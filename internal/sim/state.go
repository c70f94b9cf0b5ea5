// Package sim is the simulation core: it owns the world state and advances it
// one fixed frame at a time.
package sim

import (
	"github.com/tomz197/meteor-shooter/internal/object"
)

// State is the run phase.
type State int

const (
	StateActive   State = iota // Playing
	StateGameOver              // Terminal until Restart
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "Active"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// EndReason records why a run ended.
type EndReason int

const (
	EndNone EndReason = iota
	EndOutOfLives
	EndOutOfTime
)

func (r EndReason) String() string {
	switch r {
	case EndOutOfLives:
		return "out of lives"
	case EndOutOfTime:
		return "out of time"
	default:
		return "none"
	}
}

// WorldState holds everything that changes between frames.
// It is owned by the Simulation and lent to components for the duration of one frame.
type WorldState struct {
	Field       object.Field
	Player      *object.Player
	Projectiles []*object.Projectile
	Meteors     []*object.Meteor
	PowerUps    []*object.PowerUp
	Explosions  []*object.Explosion
	Score       int
	State       State
	EndReason   EndReason

	tuning object.Tuning
}

// NewWorldState creates an active world with a fresh player and no entities.
func NewWorldState(field object.Field, tuning object.Tuning) *WorldState {
	w := &WorldState{Field: field, tuning: tuning}
	w.Reset()
	return w
}

// Reset discards all entities, replaces the player and zeroes the score.
func (w *WorldState) Reset() {
	w.Player = object.NewPlayer(w.Field, w.tuning)
	clear(w.Projectiles)
	clear(w.Meteors)
	clear(w.PowerUps)
	clear(w.Explosions)
	w.Projectiles = w.Projectiles[:0]
	w.Meteors = w.Meteors[:0]
	w.PowerUps = w.PowerUps[:0]
	w.Explosions = w.Explosions[:0]
	w.Score = 0
	w.State = StateActive
	w.EndReason = EndNone
}

// Active reports whether the run is still being played.
func (w *WorldState) Active() bool {
	return w.State == StateActive
}

// AddScore awards points. Negative amounts are ignored so the score never decreases.
func (w *WorldState) AddScore(points int) {
	if points > 0 {
		w.Score += points
	}
}

// EndGame moves the world to GameOver. Only the first reason is kept.
func (w *WorldState) EndGame(reason EndReason) {
	if w.State == StateGameOver {
		return
	}
	w.State = StateGameOver
	w.EndReason = reason
}
