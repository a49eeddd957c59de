package netplay

import (
	"testing"

	"street-hoops/internal/court"
	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"
)

const frameDT = 1.0 / 60

func TestHeldBallSeenAsOpponentByPeer(t *testing.T) {
	p := newActivePair(t)
	if err := p.a.Step(frameDT, court.Intents{}); err != nil {
		t.Fatal(err)
	}
	updates := sentOf[protocol.BallUpdate](p.aOut)
	if len(updates) != 1 || updates[0].Owner != perspective.LabelSelf || updates[0].RoomID != "room_a_b" {
		t.Fatalf("ball updates = %+v", updates)
	}
	relay(t, updates[0], p.b)
	if p.b.ball.Owner != perspective.LabelOpponent {
		t.Fatalf("peer owner = %q, want opponent", p.b.ball.Owner)
	}
}

func TestAuthorityDecidesPickup(t *testing.T) {
	p := newActivePair(t)
	p.a.ball = court.Ball{X: p.a.self.X + 5, Y: p.a.cfg.FloorY}
	if err := p.a.Step(frameDT, court.Intents{}); err != nil {
		t.Fatal(err)
	}
	pickups := sentOf[protocol.BallPickup](p.aOut)
	if len(pickups) != 1 || pickups[0].Owner != perspective.LabelSelf {
		t.Fatalf("pickups = %+v", pickups)
	}
	for _, m := range p.aOut.sent {
		relay(t, m, p.b)
	}
	if p.b.ball.Owner != perspective.LabelOpponent {
		t.Fatalf("peer owner = %q, want opponent", p.b.ball.Owner)
	}
}

func TestReplicaLeavesLooseBallAlone(t *testing.T) {
	p := newActivePair(t)
	loose := court.Ball{X: 300, Y: 200, VX: 50, InAir: true}
	p.b.ball = loose
	p.b.self.X = 300
	if err := p.b.Step(frameDT, court.Intents{}); err != nil {
		t.Fatal(err)
	}
	if p.b.ball.X != loose.X || p.b.ball.Y != loose.Y {
		t.Fatal("replica integrated a loose ball")
	}
	if n := len(sentOf[protocol.BallUpdate](p.bOut)); n != 0 {
		t.Fatalf("replica sent %d ball updates", n)
	}
	if n := len(sentOf[protocol.PlayerMove](p.bOut)); n != 1 {
		t.Fatalf("replica sent %d moves, want 1", n)
	}
}

func TestAuthorityStreamsBallInFlight(t *testing.T) {
	p := newActivePair(t)
	p.a.ball = court.Ball{X: 400, Y: 200, VX: 50, VY: -100, InAir: true}
	if err := p.a.Step(frameDT, court.Intents{}); err != nil {
		t.Fatal(err)
	}
	updates := sentOf[protocol.BallUpdate](p.aOut)
	if len(updates) != 1 || !updates[0].InAir || updates[0].X == 400 {
		t.Fatalf("updates = %+v", updates)
	}
	relay(t, updates[0], p.b)
	if p.b.ball.X != updates[0].X || !p.b.ball.InAir {
		t.Fatal("replica did not adopt the authority snapshot")
	}
}

func TestAuthorityReportsScorerSlot(t *testing.T) {
	tests := []struct {
		name    string
		shooter perspective.Label
		from    perspective.Slot
		scorer  int
		next    perspective.Label
	}{
		{"own basket", perspective.LabelSelf, perspective.Slot1, 1, perspective.LabelOpponent},
		{"opponent basket", perspective.LabelOpponent, perspective.Slot2, 2, perspective.LabelSelf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newActivePair(t)
			cfg := p.a.cfg
			hoop := cfg.TargetHoop(tt.from)
			p.a.ball = court.Ball{
				X: hoop, Y: cfg.HoopY, VY: 100, InAir: true,
				ShotFrom: &protocol.ShotFrom{X: cfg.SpawnX(tt.from), Shooter: tt.shooter, TargetHoop: hoop},
			}
			if err := p.a.Step(frameDT, court.Intents{}); err != nil {
				t.Fatal(err)
			}
			scored := sentOf[protocol.PlayerScored](p.aOut)
			if len(scored) != 1 {
				t.Fatalf("scored = %+v", scored)
			}
			if scored[0].Scorer != tt.scorer || scored[0].Points != 5 || scored[0].EventID == "" {
				t.Fatalf("scored = %+v", scored[0])
			}
			if p.a.ball.Owner != tt.next {
				t.Fatalf("possession = %q, want %q", p.a.ball.Owner, tt.next)
			}
			if p.a.score != (protocol.Scoreboard{}) {
				t.Fatal("score must only change on scoreUpdate")
			}
		})
	}
}

func TestReplicaShotScoredByAuthority(t *testing.T) {
	p := newActivePair(t)
	cfg := p.b.cfg
	p.b.ball.Owner = perspective.LabelSelf
	p.b.self.X = cfg.SpawnX(perspective.Slot2)
	p.b.self.Y = cfg.FloorY - 80
	p.b.self.Grounded = false
	p.a.ball.Owner = perspective.LabelOpponent

	for i := 0; i < 3; i++ {
		if err := p.b.Step(frameDT, court.Intents{ShootAdvance: true}); err != nil {
			t.Fatal(err)
		}
	}
	updates := sentOf[protocol.BallUpdate](p.bOut)
	if len(updates) == 0 {
		t.Fatal("replica did not publish its release")
	}
	release := updates[len(updates)-1]
	if !release.InAir || release.ShotFrom == nil || release.ShotFrom.Shooter != perspective.LabelSelf {
		t.Fatalf("release = %+v", release.BallState)
	}
	relay(t, release, p.a)

	shot := p.a.ball.ShotFrom
	if shot == nil || shot.Shooter != perspective.LabelOpponent || shot.TargetHoop != cfg.HoopRightX {
		t.Fatalf("authority shot = %+v", shot)
	}
	// Land the tracked shot on its hoop.
	p.a.ball.X, p.a.ball.Y, p.a.ball.VX, p.a.ball.VY = cfg.HoopRightX, cfg.HoopY, 0, 100
	if err := p.a.Step(frameDT, court.Intents{}); err != nil {
		t.Fatal(err)
	}
	scored := sentOf[protocol.PlayerScored](p.aOut)
	if len(scored) != 1 || scored[0].Scorer != 2 || scored[0].Points != 5 {
		t.Fatalf("scored = %+v", scored)
	}
	if n := len(sentOf[protocol.PlayerScored](p.bOut)); n != 0 {
		t.Fatalf("replica reported %d baskets", n)
	}
}

func TestReplicaNeverReportsBaskets(t *testing.T) {
	p := newActivePair(t)
	cfg := p.b.cfg
	p.b.ball = court.Ball{
		X: cfg.HoopRightX, Y: cfg.HoopY, VY: 100, InAir: true,
		ShotFrom: &protocol.ShotFrom{X: 200, Shooter: perspective.LabelSelf, TargetHoop: cfg.HoopRightX},
	}
	if err := p.b.Step(frameDT, court.Intents{}); err != nil {
		t.Fatal(err)
	}
	if n := len(sentOf[protocol.PlayerScored](p.bOut)); n != 0 {
		t.Fatalf("replica reported %d baskets", n)
	}
}

func TestScoreUpdateMirrorsAndResetsAvatar(t *testing.T) {
	p := newActivePair(t)
	p.b.self.X = 555
	deliver(t, p.b, protocol.ScoreUpdate{Type: protocol.EventScoreUpdate, Score: protocol.Scoreboard{P1: 5}, Scorer: 1, Points: 5})
	f := p.b.Frame()
	if f.SelfScore != 0 || f.OpponentScore != 5 {
		t.Fatalf("scores = %d/%d", f.SelfScore, f.OpponentScore)
	}
	if p.b.self.X != p.b.cfg.SpawnX(perspective.Slot2) {
		t.Fatalf("avatar x = %v, want spawn", p.b.self.X)
	}
}

func TestShotSequence(t *testing.T) {
	p := newActivePair(t)
	cfg := p.a.cfg
	p.a.self.Grounded = false
	p.a.self.Y = cfg.FloorY - 80
	p.a.self.JumpTime = 0.25

	press := court.Intents{ShootAdvance: true}
	for i := 0; i < 2; i++ {
		if err := p.a.Step(frameDT, press); err != nil {
			t.Fatal(err)
		}
		if p.a.self.Y != cfg.FloorY-80 {
			t.Fatal("charging shooter must stay frozen")
		}
	}
	meters := sentOf[protocol.PlayerShoot](p.aOut)
	if len(meters) != 2 {
		t.Fatalf("meter broadcasts = %d, want 2", len(meters))
	}
	relay(t, meters[1], p.b)
	if got := p.b.Frame().OpponentMeter; got != meters[1].ShotMeter {
		t.Fatalf("peer frame meter = %+v, want %+v", got, meters[1].ShotMeter)
	}
	p.aOut.reset()
	if err := p.a.Step(frameDT, press); err != nil {
		t.Fatal(err)
	}
	updates := sentOf[protocol.BallUpdate](p.aOut)
	if len(updates) == 0 {
		t.Fatal("release sent no ball update")
	}
	first := updates[0]
	if first.Owner != perspective.LabelNone || !first.InAir || first.ShotFrom == nil || first.ShotFrom.Shooter != perspective.LabelSelf {
		t.Fatalf("release = %+v", first.BallState)
	}

	relay(t, first, p.b)
	if p.b.ball.ShotFrom == nil || p.b.ball.ShotFrom.Shooter != perspective.LabelOpponent {
		t.Fatal("peer must see the shot as the opponent's")
	}
	if p.b.ball.ShotFrom.TargetHoop != cfg.HoopLeftX {
		t.Fatal("target hoop is a shared coordinate")
	}
}

func TestShootRefusedWithoutBall(t *testing.T) {
	p := newActivePair(t)
	p.b.self.Grounded = false
	p.b.self.Y = p.b.cfg.FloorY - 80
	if err := p.b.Step(frameDT, court.Intents{ShootAdvance: true}); err != nil {
		t.Fatal(err)
	}
	if p.b.meter.Charging() || len(sentOf[protocol.PlayerShoot](p.bOut)) != 0 {
		t.Fatal("shot advanced without possession")
	}
}

func TestClockPublishesWholeSeconds(t *testing.T) {
	p := newActivePair(t)
	p.a.timeRemaining = 1.01
	if err := p.a.Step(0.02, court.Intents{}); err != nil {
		t.Fatal(err)
	}
	if n := len(sentOf[protocol.GameStateUpdate](p.aOut)); n != 1 {
		t.Fatalf("updates = %d, want 1", n)
	}
	if err := p.a.Step(0.02, court.Intents{}); err != nil {
		t.Fatal(err)
	}
	if n := len(sentOf[protocol.GameStateUpdate](p.aOut)); n != 1 {
		t.Fatalf("updates = %d, want still 1", n)
	}

	if err := p.b.Step(5, court.Intents{}); err != nil {
		t.Fatal(err)
	}
	if n := len(sentOf[protocol.GameStateUpdate](p.bOut)); n != 0 {
		t.Fatal("replica must not run the clock")
	}
	published := sentOf[protocol.GameStateUpdate](p.aOut)[0]
	relay(t, published, p.b)
	if p.b.Frame().TimeRemaining != published.TimeRemaining {
		t.Fatalf("replica clock = %v", p.b.Frame().TimeRemaining)
	}
}

func TestGameStateSyncOwnerRespectsFlight(t *testing.T) {
	p := newActivePair(t)
	p.b.ball = court.Ball{X: 300, Y: 300, InAir: true}
	deliver(t, p.b, protocol.GameStateSync{Type: protocol.EventGameStateSync, TimeRemaining: 100, BallOwner: perspective.LabelSelf})
	if p.b.ball.Owner != perspective.LabelNone {
		t.Fatal("ball in flight must ignore the owner hint")
	}
	p.b.ball.InAir = false
	deliver(t, p.b, protocol.GameStateSync{Type: protocol.EventGameStateSync, TimeRemaining: 99, BallOwner: perspective.LabelSelf})
	if p.b.ball.Owner != perspective.LabelOpponent {
		t.Fatalf("owner = %q, want opponent", p.b.ball.Owner)
	}
}

func TestOpponentMoveApplied(t *testing.T) {
	p := newActivePair(t)
	if err := p.a.Step(frameDT, court.Intents{Right: true}); err != nil {
		t.Fatal(err)
	}
	move := sentOf[protocol.PlayerMove](p.aOut)[0]
	relay(t, move, p.b)
	if p.b.opponent.X != p.a.self.X {
		t.Fatalf("opponent x = %v, want %v", p.b.opponent.X, p.a.self.X)
	}
}
