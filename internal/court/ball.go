package court

import (
	"math"

	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"
)

const (
	floorRestitution = 0.6
	floorFriction    = 0.8
	wallRestitution  = 0.7
	restSpeed        = 20
	carryOffset      = 5
)

// Ball labels are always from the local viewer's perspective.
type Ball struct {
	X, Y     float64
	VX, VY   float64
	Owner    perspective.Label
	InAir    bool
	ShotFrom *protocol.ShotFrom
}

// Loose reports whether neither avatar holds the ball.
func (b Ball) Loose() bool {
	return b.Owner == perspective.LabelNone
}

// Carry pins the ball above its holder.
func (b *Ball) Carry(holder Avatar, cfg Config) {
	b.X = holder.X
	b.Y = holder.Y - cfg.PlayerHeight/2 - cfg.BallRadius - carryOffset
	b.VX, b.VY = 0, 0
}

// Integrate advances a loose airborne ball: gravity, then an axis-aligned
// floor bounce and side-wall bounce. A ball that stops bouncing comes to rest.
func (b *Ball) Integrate(dt float64, cfg Config) {
	if !b.Loose() || !b.InAir {
		return
	}
	b.VY += cfg.BallGravity * dt
	b.X += b.VX * dt
	b.Y += b.VY * dt

	if b.Y >= cfg.FloorY {
		b.Y = cfg.FloorY
		b.VY *= -floorRestitution
		b.VX *= floorFriction
		if math.Abs(b.VY) < restSpeed {
			b.InAir = false
			b.VY = 0
		}
	}
	if b.X < cfg.BallRadius || b.X > cfg.Width-cfg.BallRadius {
		b.VX *= -wallRestitution
		b.X = clamp(b.X, cfg.BallRadius, cfg.Width-cfg.BallRadius)
	}
}

// DecidePickup returns which avatar captures a resting loose ball, or
// LabelNone. The closer avatar within StealRange wins; ties go to the
// opponent, matching the single-player rules.
func (b Ball) DecidePickup(self, opponent Avatar, cfg Config) perspective.Label {
	if !b.Loose() || b.InAir {
		return perspective.LabelNone
	}
	dSelf := math.Hypot(b.X-self.X, b.Y-self.Y)
	dOpp := math.Hypot(b.X-opponent.X, b.Y-opponent.Y)
	switch {
	case dSelf < cfg.StealRange && dSelf < dOpp:
		return perspective.LabelSelf
	case dOpp < cfg.StealRange && dOpp <= dSelf:
		return perspective.LabelOpponent
	default:
		return perspective.LabelNone
	}
}

// State encodes the ball with labels from the local perspective.
func (b Ball) State() protocol.BallState {
	var shot *protocol.ShotFrom
	if b.ShotFrom != nil {
		cp := *b.ShotFrom
		shot = &cp
	}
	return protocol.BallState{X: b.X, Y: b.Y, VX: b.VX, VY: b.VY, InAir: b.InAir, Owner: b.Owner, ShotFrom: shot}
}

// ApplyRemote overwrites the ball wholesale from a snapshot written in the
// peer's perspective, flipping every embedded label.
func (b *Ball) ApplyRemote(s protocol.BallState) {
	b.X, b.Y, b.VX, b.VY = s.X, s.Y, s.VX, s.VY
	b.InAir = s.InAir
	b.Owner = perspective.Flip(s.Owner)
	b.ShotFrom = TranslateShot(s.ShotFrom)
}

// TranslateShot returns a copy of shot with the shooter label flipped.
func TranslateShot(shot *protocol.ShotFrom) *protocol.ShotFrom {
	if shot == nil {
		return nil
	}
	cp := *shot
	cp.Shooter = perspective.Flip(shot.Shooter)
	return &cp
}
