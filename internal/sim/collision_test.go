package sim

import (
	"math/rand"
	"testing"

	"github.com/tomz197/meteor-shooter/internal/loop/config"
	"github.com/tomz197/meteor-shooter/internal/object"
)

var testField = object.Field{Width: config.FieldWidth, Height: config.FieldHeight}

func newTestResolver() *CollisionResolver {
	return NewCollisionResolver(testField, rand.New(rand.NewSource(1)))
}

func largeMeteor(x, y float64) *object.Meteor {
	return &object.Meteor{X: x, Y: y, W: 40, H: 40, Size: object.MeteorLarge, Points: object.MeteorPoints}
}

func capsule(x, y float64, kind object.PowerUpKind) *object.PowerUp {
	return &object.PowerUp{X: x, Y: y, W: 25, H: 25, Kind: kind}
}

func TestResolveBulletDestroysMeteor(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	w.Meteors = append(w.Meteors, largeMeteor(100, 100))
	w.Projectiles = append(w.Projectiles, object.NewBullet(120, 130, 0, false))

	r := newTestResolver().Resolve(w, baseTime)

	if len(w.Meteors) != 0 || len(w.Projectiles) != 0 {
		t.Errorf("meteors = %d, projectiles = %d, want both 0", len(w.Meteors), len(w.Projectiles))
	}
	if w.Score != 10 || r.PointsAwarded != 10 {
		t.Errorf("score = %d, awarded = %d, want 10", w.Score, r.PointsAwarded)
	}
	if len(w.Explosions) != 1 {
		t.Fatalf("explosions = %d, want 1", len(w.Explosions))
	}
	if e := w.Explosions[0]; e.X != 120 || e.Y != 120 || e.Size != object.MeteorLarge {
		t.Errorf("explosion at (%v, %v) size %v, want (120, 120) large", e.X, e.Y, e.Size)
	}
}

func TestResolveFirstMatchWins(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	first := largeMeteor(100, 100)
	second := largeMeteor(110, 110)
	w.Meteors = append(w.Meteors, first, second)
	w.Projectiles = append(w.Projectiles, object.NewBullet(125, 125, 0, false))

	r := newTestResolver().Resolve(w, baseTime)

	if r.MeteorsDestroyed != 1 {
		t.Errorf("destroyed = %d, want 1", r.MeteorsDestroyed)
	}
	if len(w.Meteors) != 1 || w.Meteors[0] != second {
		t.Error("the earlier meteor should be destroyed and the later one kept")
	}
}

func TestResolveDoubleScore(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	w.Player.Activate(object.PowerUpDoubleScore, baseTime)
	w.Meteors = append(w.Meteors, largeMeteor(100, 100), largeMeteor(300, 100))
	w.Projectiles = append(w.Projectiles,
		object.NewBullet(120, 130, 0, false),
		object.NewBullet(320, 130, 0, false),
	)

	newTestResolver().Resolve(w, baseTime)

	if w.Score != 40 {
		t.Errorf("score = %d, want 40", w.Score)
	}
}

func TestResolveLaserSurvivesHits(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	upper := largeMeteor(380, 100)
	lower := largeMeteor(380, 300)
	w.Meteors = append(w.Meteors, upper, lower)
	w.Projectiles = append(w.Projectiles, object.NewLaser(400, 550, baseTime))

	res := newTestResolver()
	res.Resolve(w, baseTime)

	if len(w.Projectiles) != 1 {
		t.Fatalf("projectiles = %d, want the laser to survive", len(w.Projectiles))
	}
	if len(w.Meteors) != 1 || w.Meteors[0] != lower {
		t.Fatal("laser should destroy only the earliest overlapping meteor per frame")
	}

	res.Resolve(w, at(16))
	if len(w.Meteors) != 0 {
		t.Errorf("meteors = %d, want the laser to take the second one next frame", len(w.Meteors))
	}
	if w.Score != 20 {
		t.Errorf("score = %d, want 20", w.Score)
	}
}

func TestResolveBulletHitsOnlyOnce(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	w.Meteors = append(w.Meteors, largeMeteor(100, 100))
	w.Projectiles = append(w.Projectiles,
		object.NewBullet(120, 130, 0, false),
		object.NewBullet(122, 130, 0, false),
	)

	r := newTestResolver().Resolve(w, baseTime)

	if r.MeteorsDestroyed != 1 || w.Score != 10 {
		t.Errorf("destroyed = %d, score = %d, want 1 and 10", r.MeteorsDestroyed, w.Score)
	}
	if len(w.Projectiles) != 1 {
		t.Errorf("projectiles = %d, want the second bullet to survive", len(w.Projectiles))
	}
}

func TestResolvePlayerHit(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	w.Meteors = append(w.Meteors, largeMeteor(380, 530), largeMeteor(390, 540))

	r := newTestResolver().Resolve(w, baseTime)

	if !r.PlayerHit {
		t.Fatal("expected player hit")
	}
	if w.Player.Lives != 2 {
		t.Errorf("lives = %d, want 2 (one hit per frame)", w.Player.Lives)
	}
	if len(w.Meteors) != 1 {
		t.Errorf("meteors = %d, want 1", len(w.Meteors))
	}
	if !w.Player.Active(object.PowerUpShield, baseTime) {
		t.Error("hit should activate the shield")
	}
	if w.Score != 0 {
		t.Errorf("score = %d, ramming a meteor awards nothing", w.Score)
	}
}

func TestResolveShieldBlocksDamage(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	w.Player.Activate(object.PowerUpShield, baseTime)
	w.Meteors = append(w.Meteors, largeMeteor(380, 530))

	r := newTestResolver().Resolve(w, at(4999))

	if r.PlayerHit || w.Player.Lives != 3 {
		t.Errorf("shielded player lost a life: lives = %d", w.Player.Lives)
	}
	if len(w.Meteors) != 1 {
		t.Error("meteor touching a shielded player should pass through")
	}
}

func TestResolveProjectilePassRunsFirst(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	w.Meteors = append(w.Meteors, largeMeteor(380, 520))
	w.Projectiles = append(w.Projectiles, object.NewBullet(400, 540, 0, false))

	r := newTestResolver().Resolve(w, baseTime)

	if r.PlayerHit || w.Player.Lives != 3 {
		t.Error("meteor destroyed by a bullet must not hit the player in the same frame")
	}
}

func TestResolveLastLifeEndsGame(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	w.Player.Lives = 1
	w.Meteors = append(w.Meteors, largeMeteor(380, 530))
	w.PowerUps = append(w.PowerUps, capsule(390, 560, object.PowerUpRapidFire))

	r := newTestResolver().Resolve(w, baseTime)

	if w.Player.Lives != 0 {
		t.Errorf("lives = %d, want 0", w.Player.Lives)
	}
	if w.State != StateGameOver || w.EndReason != EndOutOfLives {
		t.Errorf("state = %v (%v), want GameOver (out of lives)", w.State, w.EndReason)
	}
	if !w.Player.Active(object.PowerUpShield, baseTime) {
		t.Error("shield should be active after the final hit")
	}
	if r.Collected || len(w.PowerUps) != 1 {
		t.Error("power-up pass should be skipped once the game is lost")
	}
}

func TestResolveOnePowerUpPerFrame(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	w.PowerUps = append(w.PowerUps,
		capsule(380, 550, object.PowerUpTripleShot),
		capsule(395, 550, object.PowerUpLaser),
	)

	r := newTestResolver().Resolve(w, baseTime)

	if !r.Collected || r.CollectedKind != object.PowerUpTripleShot {
		t.Errorf("collected = %v %v, want triple shot", r.Collected, r.CollectedKind)
	}
	if !w.Player.Active(object.PowerUpTripleShot, baseTime) {
		t.Error("triple shot should be active")
	}
	if w.Player.Active(object.PowerUpLaser, baseTime) {
		t.Error("second capsule must wait for the next frame")
	}
	if len(w.PowerUps) != 1 {
		t.Errorf("power-ups = %d, want 1", len(w.PowerUps))
	}
}

func TestResolveSkippedWhenGameOver(t *testing.T) {
	w := NewWorldState(testField, object.DefaultTuning())
	w.EndGame(EndOutOfTime)
	w.Meteors = append(w.Meteors, largeMeteor(100, 100), largeMeteor(380, 530))
	w.Projectiles = append(w.Projectiles, object.NewBullet(120, 130, 0, false))

	r := newTestResolver().Resolve(w, baseTime)

	if r != (Report{}) {
		t.Errorf("report = %+v, want empty", r)
	}
	if len(w.Meteors) != 2 || w.Player.Lives != 3 || w.Score != 0 {
		t.Error("nothing should change after game over")
	}
}
