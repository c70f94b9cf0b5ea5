package object

import "time"

// Fixed geometry and scoring. These shape the game rather than tune it.
const (
	PlayerWidth        = 40
	PlayerHeight       = 30
	PlayerBottomOffset = 50 // Distance from the bottom edge to the ship's top
	InitialLives       = 3
	TripleShotSpread   = 15.0 // Degrees

	BulletWidth  = 4
	BulletHeight = 10
	BulletSpeed  = 8.0
	BulletDamage = 1
	MegaFactor   = 2 // Size, speed and damage multiplier for mega bullets

	LaserWidth    = 6
	LaserDamage   = 5
	LaserLifetime = 200 * time.Millisecond

	LargeMeteorSize     = 40
	SmallMeteorSize     = 20
	MeteorRotationSpeed = 5.0 // Max degrees per frame, either direction
	MeteorPoints        = 10
	MeteorSpawnY        = -50

	PowerUpSize   = 25
	PowerUpSpeed  = 2.0
	PowerUpSpawnY = -30
)

// Explosions
const (
	SmallExplosionParticles = 8
	LargeExplosionParticles = 15
	ExplosionMinFrames      = 20
	ParticleMinSpeed        = 2.0
	ParticleMaxSpeed        = 6.0
	ParticleMinLife         = 10 // Frames
	ParticleMaxLife         = 20 // Frames
)

// SpeedRange is a uniform range in units per frame.
type SpeedRange struct {
	Min, Max float64
}

// Tuning holds the gameplay parameters supplied when a game is built.
type Tuning struct {
	PlayerSpeed       float64 // Units per frame
	ShotCooldown      time.Duration
	RapidFireCooldown time.Duration

	PowerUpDurations [powerUpKindCount]time.Duration

	InitialMeteorInterval time.Duration
	MeteorIntervalStep    time.Duration // Subtracted after every meteor wave
	MinMeteorInterval     time.Duration
	MinPowerUpInterval    time.Duration
	MaxPowerUpInterval    time.Duration

	LargeMeteorSpeed SpeedRange
	SmallMeteorSpeed SpeedRange

	TimeSlowFactor float64 // Motion multiplier for meteors and bullets under time slow
}

// DefaultTuning returns the standard game balance.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerSpeed:       5,
		ShotCooldown:      250 * time.Millisecond,
		RapidFireCooldown: 100 * time.Millisecond,
		PowerUpDurations: [powerUpKindCount]time.Duration{
			PowerUpRapidFire:   5000 * time.Millisecond,
			PowerUpShield:      5000 * time.Millisecond,
			PowerUpDoubleScore: 5000 * time.Millisecond,
			PowerUpTripleShot:  7000 * time.Millisecond,
			PowerUpLaser:       4000 * time.Millisecond,
			PowerUpTimeSlow:    6000 * time.Millisecond,
			PowerUpMegaBullets: 5000 * time.Millisecond,
		},
		InitialMeteorInterval: 1000 * time.Millisecond,
		MeteorIntervalStep:    10 * time.Millisecond,
		MinMeteorInterval:     400 * time.Millisecond,
		MinPowerUpInterval:    8000 * time.Millisecond,
		MaxPowerUpInterval:    12000 * time.Millisecond,
		LargeMeteorSpeed:      SpeedRange{Min: 1, Max: 3},
		SmallMeteorSpeed:      SpeedRange{Min: 2, Max: 4},
		TimeSlowFactor:        0.3,
	}
}

// Duration returns how long a power-up of the given kind stays active after pickup.
func (t Tuning) Duration(kind PowerUpKind) time.Duration {
	if kind < 0 || kind >= powerUpKindCount {
		return 0
	}
	return t.PowerUpDurations[kind]
}

// MeteorSpeed returns the speed range for a size class.
func (t Tuning) MeteorSpeed(size MeteorSize) SpeedRange {
	if size == MeteorLarge {
		return t.LargeMeteorSpeed
	}
	return t.SmallMeteorSpeed
}
