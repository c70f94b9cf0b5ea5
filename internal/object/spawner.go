package object

import (
	"math/rand"
	"time"
)

// SpawnScheduler decides when new meteors and power-ups enter the field.
// The meteor interval shrinks with every meteor wave down to a floor,
// which is the game's only difficulty ramp.
type SpawnScheduler struct {
	rng              *rand.Rand
	lastMeteorSpawn  time.Time
	lastPowerUpSpawn time.Time
	meteorInterval   time.Duration
	powerUpInterval  time.Duration
	tuning           Tuning
}

// NewSpawnScheduler creates a scheduler whose timers start at now.
func NewSpawnScheduler(rng *rand.Rand, now time.Time, tuning Tuning) *SpawnScheduler {
	s := &SpawnScheduler{rng: rng, tuning: tuning}
	s.Reset(now)
	return s
}

// Reset restores the initial intervals and restarts both timers at now.
func (s *SpawnScheduler) Reset(now time.Time) {
	s.lastMeteorSpawn = now
	s.lastPowerUpSpawn = now
	s.meteorInterval = s.tuning.InitialMeteorInterval
	s.powerUpInterval = s.rollPowerUpInterval()
}

// MeteorInterval returns the current gap between meteor waves.
func (s *SpawnScheduler) MeteorInterval() time.Duration {
	return s.meteorInterval
}

// PowerUpInterval returns the current gap before the next capsule.
func (s *SpawnScheduler) PowerUpInterval() time.Duration {
	return s.powerUpInterval
}

// MaybeSpawnMeteors returns one or two new meteors above the top edge once the
// meteor interval has passed, or nil.
func (s *SpawnScheduler) MaybeSpawnMeteors(now time.Time, fieldWidth float64) []*Meteor {
	if now.Sub(s.lastMeteorSpawn) <= s.meteorInterval {
		return nil
	}
	s.lastMeteorSpawn = now

	count := 1 + s.rng.Intn(2)
	meteors := make([]*Meteor, 0, count)
	for range count {
		x := s.randomX(fieldWidth, LargeMeteorSize)
		size := MeteorLarge
		if s.rng.Intn(3) == 0 {
			size = MeteorSmall
		}
		meteors = append(meteors, NewMeteor(x, MeteorSpawnY, size, s.tuning.MeteorSpeed(size), s.rng))
	}

	s.meteorInterval -= s.tuning.MeteorIntervalStep
	if s.meteorInterval < s.tuning.MinMeteorInterval {
		s.meteorInterval = s.tuning.MinMeteorInterval
	}

	return meteors
}

// MaybeSpawnPowerUps returns a new capsule above the top edge once the power-up
// interval has passed, or nil. The interval is re-rolled after each spawn.
func (s *SpawnScheduler) MaybeSpawnPowerUps(now time.Time, fieldWidth float64) []*PowerUp {
	if now.Sub(s.lastPowerUpSpawn) <= s.powerUpInterval {
		return nil
	}
	s.lastPowerUpSpawn = now
	s.powerUpInterval = s.rollPowerUpInterval()

	x := s.randomX(fieldWidth, PowerUpSize)
	return []*PowerUp{NewPowerUp(x, PowerUpSpawnY, s.rng)}
}

// rollPowerUpInterval draws a whole number of milliseconds in [min, max].
func (s *SpawnScheduler) rollPowerUpInterval() time.Duration {
	span := int((s.tuning.MaxPowerUpInterval - s.tuning.MinPowerUpInterval) / time.Millisecond)
	if span < 0 {
		span = 0
	}
	return s.tuning.MinPowerUpInterval + time.Duration(s.rng.Intn(span+1))*time.Millisecond
}

// randomX returns a whole-unit x so an object of the given width fits inside the field.
func (s *SpawnScheduler) randomX(fieldWidth float64, width int) float64 {
	span := int(fieldWidth) - width
	if span <= 0 {
		return 0
	}
	return float64(s.rng.Intn(span + 1))
}
