package court

import (
	"math/rand"
	"testing"

	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"
)

func TestPointsByDistance(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		x    float64
		want int
	}{
		{200, 2},
		{250, 2},
		{251, 3},
		{449, 3},
		{450, 5},
		{700, 5},
	}
	for _, tt := range tests {
		got := Points(protocol.ShotFrom{X: tt.x, TargetHoop: cfg.HoopLeftX}, cfg)
		if got != tt.want {
			t.Fatalf("Points(x=%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestIntegrateFloorBounceAndRest(t *testing.T) {
	cfg := DefaultConfig()
	b := Ball{X: 400, Y: cfg.FloorY - 1, VX: 100, VY: 200, InAir: true}
	b.Integrate(1.0/60, cfg)
	if b.Y != cfg.FloorY {
		t.Fatalf("Y = %v, want floor", b.Y)
	}
	if b.VY >= 0 {
		t.Fatalf("VY = %v, want upward after bounce", b.VY)
	}
	if b.VX >= 100 {
		t.Fatalf("VX = %v, want friction applied", b.VX)
	}

	b = Ball{X: 400, Y: cfg.FloorY, VY: 5, InAir: true}
	b.Integrate(0.001, cfg)
	if b.InAir {
		t.Fatal("slow bounce must come to rest")
	}
}

func TestIntegrateWallBounce(t *testing.T) {
	cfg := DefaultConfig()
	b := Ball{X: cfg.Width - cfg.BallRadius, Y: 300, VX: 300, InAir: true}
	b.Integrate(1.0/60, cfg)
	if b.VX >= 0 {
		t.Fatalf("VX = %v, want reversed", b.VX)
	}
	if b.X > cfg.Width-cfg.BallRadius {
		t.Fatalf("X = %v escaped the court", b.X)
	}
}

func TestIntegrateIgnoresHeldBall(t *testing.T) {
	cfg := DefaultConfig()
	b := Ball{X: 10, Y: 10, VY: 50, InAir: true, Owner: perspective.LabelSelf}
	b.Integrate(1, cfg)
	if b.X != 10 || b.Y != 10 {
		t.Fatal("held ball must not be integrated")
	}
}

func TestDecidePickup(t *testing.T) {
	cfg := DefaultConfig()
	self := NewAvatar(400, cfg)
	opp := NewAvatar(600, cfg)

	b := Ball{X: 410, Y: cfg.FloorY}
	if got := b.DecidePickup(self, opp, cfg); got != perspective.LabelSelf {
		t.Fatalf("pickup = %q, want self", got)
	}
	b = Ball{X: 590, Y: cfg.FloorY}
	if got := b.DecidePickup(self, opp, cfg); got != perspective.LabelOpponent {
		t.Fatalf("pickup = %q, want opponent", got)
	}
	b = Ball{X: 500, Y: cfg.FloorY}
	if got := b.DecidePickup(self, opp, cfg); got != perspective.LabelNone {
		t.Fatalf("pickup = %q, want none out of range", got)
	}
	b = Ball{X: 410, Y: cfg.FloorY, InAir: true}
	if got := b.DecidePickup(self, opp, cfg); got != perspective.LabelNone {
		t.Fatal("airborne ball cannot be picked up")
	}
}

func TestCheckBasketScoresOnce(t *testing.T) {
	cfg := DefaultConfig()
	b := Ball{
		X: cfg.HoopLeftX + 5, Y: cfg.HoopY, VY: 100, InAir: true,
		ShotFrom: &protocol.ShotFrom{X: 300, Shooter: perspective.LabelSelf, TargetHoop: cfg.HoopLeftX},
	}
	got, ok := b.CheckBasket(cfg)
	if !ok || got.Points != 3 || got.Shot.Shooter != perspective.LabelSelf {
		t.Fatalf("CheckBasket = %+v, %v", got, ok)
	}
	if _, ok := b.CheckBasket(cfg); ok {
		t.Fatal("the same shot scored twice")
	}
}

func TestCheckBasketIgnoresOtherHoop(t *testing.T) {
	cfg := DefaultConfig()
	b := Ball{
		X: cfg.HoopRightX, Y: cfg.HoopY, VY: 100, InAir: true,
		ShotFrom: &protocol.ShotFrom{X: 650, Shooter: perspective.LabelSelf, TargetHoop: cfg.HoopLeftX},
	}
	if got, ok := b.CheckBasket(cfg); ok {
		t.Fatalf("ball through the other hoop scored: %+v", got)
	}
	if b.ShotFrom == nil {
		t.Fatal("missed shot must stay tracked")
	}
}

func TestCheckBasketRequiresDescent(t *testing.T) {
	cfg := DefaultConfig()
	b := Ball{X: cfg.HoopLeftX, Y: cfg.HoopY, VY: -100, InAir: true, ShotFrom: &protocol.ShotFrom{X: 200, TargetHoop: cfg.HoopLeftX}}
	if _, ok := b.CheckBasket(cfg); ok {
		t.Fatal("rising ball must not score")
	}
}

func TestShotMeterGuards(t *testing.T) {
	cfg := DefaultConfig()
	grounded := NewAvatar(500, cfg)
	var m ShotMeter
	if _, ok := m.Advance(grounded, true); ok {
		t.Fatal("advance while grounded must be refused")
	}
	air := grounded
	air.Grounded = false
	if _, ok := m.Advance(air, false); ok {
		t.Fatal("advance without the ball must be refused")
	}

	if release, ok := m.Advance(air, true); !ok || release || m.Stage != StagePower {
		t.Fatalf("first press: release=%v ok=%v stage=%v", release, ok, m.Stage)
	}
	m.Tick(0.8)
	if m.Power != 80 {
		t.Fatalf("Power = %v, want 80", m.Power)
	}
	if _, ok := m.Advance(air, true); !ok || m.Stage != StageAccuracy || m.LockedPower != 80 {
		t.Fatalf("second press: %+v", m)
	}
	if release, ok := m.Advance(air, true); !ok || !release {
		t.Fatal("third press must release")
	}
}

func TestShootPerfectMeterTracksShot(t *testing.T) {
	cfg := DefaultConfig()
	shooter := NewAvatar(200, cfg)
	shooter.Grounded = false
	shooter.Y = cfg.FloorY - 80
	shooter.JumpTime = 0.25
	opp := NewAvatar(600, cfg)
	m := ShotMeter{Stage: StageAccuracy, LockedPower: 90, Accuracy: 50}
	b := Ball{Owner: perspective.LabelSelf}

	blocked := b.Shoot(shooter, opp, cfg.HoopLeftX, m, cfg, rand.New(rand.NewSource(1)))
	if blocked {
		t.Fatal("undefended shot was blocked")
	}
	if !b.Loose() || !b.InAir {
		t.Fatal("released ball must be loose and airborne")
	}
	if b.VX >= 0 || b.VY > minArcShort {
		t.Fatalf("velocity (%v,%v) not toward the left hoop with arc", b.VX, b.VY)
	}
	if b.ShotFrom == nil || b.ShotFrom.Shooter != perspective.LabelSelf || b.ShotFrom.TargetHoop != cfg.HoopLeftX {
		t.Fatalf("ShotFrom = %+v", b.ShotFrom)
	}
}

func TestApplyRemoteFlipsLabels(t *testing.T) {
	var b Ball
	b.ApplyRemote(protocol.BallState{
		X: 1, Y: 2, InAir: true, Owner: perspective.LabelSelf,
		ShotFrom: &protocol.ShotFrom{Shooter: perspective.LabelOpponent},
	})
	if b.Owner != perspective.LabelOpponent {
		t.Fatalf("Owner = %q, want opponent", b.Owner)
	}
	if b.ShotFrom.Shooter != perspective.LabelSelf {
		t.Fatalf("Shooter = %q, want self", b.ShotFrom.Shooter)
	}
	back := b.State()
	back.Owner = perspective.Flip(back.Owner)
	back.ShotFrom = TranslateShot(back.ShotFrom)
	if back.Owner != perspective.LabelSelf || back.ShotFrom.Shooter != perspective.LabelOpponent {
		t.Fatal("translating twice must restore the original labels")
	}
}

func TestAvatarJumpAndLand(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAvatar(400, cfg)
	a.Step(Intents{Jump: true, Left: true}, 1.0/60, cfg)
	if a.Grounded || a.VX != -cfg.MoveSpeed || !a.FacingLeft {
		t.Fatalf("after jump: %+v", a)
	}
	landed := false
	for i := 0; i < 120 && !landed; i++ {
		landed = a.Step(Intents{}, 1.0/60, cfg)
	}
	if !landed || !a.Grounded || a.Y != cfg.FloorY {
		t.Fatalf("avatar never landed: %+v", a)
	}
}
