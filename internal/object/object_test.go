package object

import (
	"math"
	"math/rand"
	"testing"
	"time"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func ctxAt(now time.Time) UpdateContext {
	return UpdateContext{Now: now, Field: testField, SpeedScale: 1}
}

func TestBulletVelocityFromAngle(t *testing.T) {
	tests := []struct {
		angle  float64
		wantVX float64
		wantVY float64
	}{
		{0, 0, -8},
		{15, 8 * math.Sin(15*math.Pi/180), -8 * math.Cos(15*math.Pi/180)},
		{-15, -8 * math.Sin(15*math.Pi/180), -8 * math.Cos(15*math.Pi/180)},
	}

	for _, tt := range tests {
		b := NewBullet(100, 500, tt.angle, false)
		if math.Abs(b.VX-tt.wantVX) > 1e-9 || math.Abs(b.VY-tt.wantVY) > 1e-9 {
			t.Errorf("angle %v: velocity = (%v, %v), want (%v, %v)", tt.angle, b.VX, b.VY, tt.wantVX, tt.wantVY)
		}
	}
}

func TestBulletMotionAndExpiry(t *testing.T) {
	b := NewBullet(100, 12, 0, false)
	ctx := ctxAt(baseTime)

	b.Update(ctx)
	if b.Y != 4 {
		t.Errorf("Y = %v, want 4", b.Y)
	}
	if b.Expired(ctx) {
		t.Error("bullet still on the field reported expired")
	}

	b.Update(ctx)
	if !b.Expired(ctx) {
		t.Error("bullet above the top edge should be expired")
	}

	side := NewBullet(2, 300, -15, false)
	side.Update(ctx)
	if !side.Expired(ctx) {
		t.Errorf("bullet at x=%v should be expired", side.X)
	}
}

func TestBulletTimeSlow(t *testing.T) {
	b := NewBullet(100, 500, 0, false)
	ctx := ctxAt(baseTime)
	ctx.SpeedScale = 0.5

	b.Update(ctx)
	if b.Y != 496 {
		t.Errorf("Y = %v, want 496 at half speed", b.Y)
	}
}

func TestLaserLifetime(t *testing.T) {
	l := NewLaser(400, 550, baseTime)

	r := l.Bounds()
	if r.X != 397 || r.Y != 0 || r.W != 6 || r.H != 550 {
		t.Errorf("laser bounds = %+v, want {397 0 6 550}", r)
	}

	l.Update(ctxAt(baseTime.Add(100 * time.Millisecond)))
	if l.Bounds() != r {
		t.Error("laser must not move")
	}
	if l.Expired(ctxAt(baseTime.Add(200 * time.Millisecond))) {
		t.Error("laser expired before its lifetime elapsed")
	}
	if !l.Expired(ctxAt(baseTime.Add(201 * time.Millisecond))) {
		t.Error("laser should expire after 200ms")
	}

	l.MarkDestroyed()
	if l.IsDestroyed() {
		t.Error("laser must survive hits")
	}
}

func TestMeteorSizes(t *testing.T) {
	rng := newTestRand()
	for range 50 {
		large := NewMeteor(0, -50, MeteorLarge, DefaultTuning().MeteorSpeed(MeteorLarge), rng)
		if large.W != 40 || large.H != 40 || large.Speed < 1 || large.Speed >= 3 {
			t.Fatalf("large meteor = %+v", large)
		}
		small := NewMeteor(0, -50, MeteorSmall, DefaultTuning().MeteorSpeed(MeteorSmall), rng)
		if small.W != 20 || small.H != 20 || small.Speed < 2 || small.Speed >= 4 {
			t.Fatalf("small meteor = %+v", small)
		}
		if large.Points != 10 || small.Points != 10 {
			t.Fatalf("points = %d/%d, want 10", large.Points, small.Points)
		}
	}
}

func TestMeteorFallsOffBottom(t *testing.T) {
	m := NewMeteor(10, 599, MeteorSmall, DefaultTuning().MeteorSpeed(MeteorSmall), newTestRand())
	ctx := ctxAt(baseTime)

	if m.Expired(ctx) {
		t.Error("meteor above the bottom edge reported expired")
	}
	m.Update(ctx)
	if !m.Expired(ctx) {
		t.Errorf("meteor at y=%v should be expired", m.Y)
	}
}

func TestPowerUpIgnoresTimeSlow(t *testing.T) {
	p := NewPowerUp(10, 0, newTestRand())
	ctx := ctxAt(baseTime)
	ctx.SpeedScale = 0.3

	p.Update(ctx)
	if p.Y != 2 || p.Glow != 1 {
		t.Errorf("power-up after one frame: y=%v glow=%d, want y=2 glow=1", p.Y, p.Glow)
	}
}

func TestPowerUpKindsUniform(t *testing.T) {
	rng := newTestRand()
	seen := map[PowerUpKind]int{}
	for range 700 {
		seen[NewPowerUp(0, 0, rng).Kind]++
	}
	if len(seen) != len(PowerUpKinds) {
		t.Errorf("saw %d kinds, want %d", len(seen), len(PowerUpKinds))
	}
}

func TestExplosionLifecycle(t *testing.T) {
	rng := newTestRand()
	small := NewExplosion(50, 50, MeteorSmall, rng)
	large := NewExplosion(50, 50, MeteorLarge, rng)

	if len(small.Particles) != 8 || len(large.Particles) != 15 {
		t.Fatalf("particle counts = %d/%d, want 8/15", len(small.Particles), len(large.Particles))
	}
	if !small.Bounds().Empty() {
		t.Error("explosions must have no collision footprint")
	}

	ctx := ctxAt(baseTime)
	frames := 0
	for !small.Expired(ctx) {
		small.Update(ctx)
		frames++
		if frames > 100 {
			t.Fatal("explosion never finished")
		}
	}
	if frames != 21 {
		t.Errorf("explosion finished after %d frames, want 21", frames)
	}
}

func TestCompactAndCull(t *testing.T) {
	rng := newTestRand()
	meteors := []*Meteor{
		NewMeteor(0, 0, MeteorSmall, DefaultTuning().MeteorSpeed(MeteorSmall), rng),
		NewMeteor(50, 0, MeteorSmall, DefaultTuning().MeteorSpeed(MeteorSmall), rng),
		NewMeteor(100, 0, MeteorSmall, DefaultTuning().MeteorSpeed(MeteorSmall), rng),
	}
	first, last := meteors[0], meteors[2]
	meteors[1].MarkDestroyed()

	meteors = Compact(meteors)
	if len(meteors) != 2 || meteors[0] != first || meteors[1] != last {
		t.Fatalf("Compact kept wrong meteors: %v", meteors)
	}

	last.Y = 1000
	meteors = Cull(meteors, ctxAt(baseTime))
	if len(meteors) != 1 || meteors[0] != first {
		t.Errorf("Cull kept %d meteors, want only the first", len(meteors))
	}
}
