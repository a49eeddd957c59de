package court

import (
	"math"
	"math/rand"

	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"
)

type ShotStage int

const (
	StageIdle ShotStage = iota
	StagePower
	StageAccuracy
)

const (
	powerRate     = 100
	accuracyRate  = 150
	meterCenter   = 50
	typicalJump   = 0.5
	blockHeight   = 60
	blockChance   = 0.7
	minArcShort   = -350
	minArcLong    = -450
	shotReference = 500
)

// ShotMeter is the two-stage power then accuracy meter. The first stage
// freezes the shooter in the air until the shot is released or it lands.
type ShotMeter struct {
	Stage       ShotStage
	Power       float64
	LockedPower float64
	Accuracy    float64
	dir         float64
}

// Charging reports whether the meter holds the shooter frozen.
func (m ShotMeter) Charging() bool {
	return m.Stage != StageIdle
}

// Advance moves to the next stage. It is refused unless the avatar is
// airborne and holds the ball; release is true on the third press.
func (m *ShotMeter) Advance(shooter Avatar, holdsBall bool) (release, ok bool) {
	if shooter.Grounded || !holdsBall {
		return false, false
	}
	switch m.Stage {
	case StageIdle:
		m.Stage = StagePower
		m.Power = 0
	case StagePower:
		m.LockedPower = m.Power
		m.Stage = StageAccuracy
		m.Accuracy = meterCenter
		m.dir = 1
	case StageAccuracy:
		return true, true
	}
	return false, true
}

// Tick runs the meters in real time, independent of the frozen shooter.
func (m *ShotMeter) Tick(dt float64) {
	switch m.Stage {
	case StagePower:
		m.Power += dt * powerRate
		if m.Power >= 100 {
			m.Power = 0
		}
	case StageAccuracy:
		m.Accuracy += m.dir * dt * accuracyRate
		if m.Accuracy >= 100 {
			m.Accuracy = 100
			m.dir = -1
		} else if m.Accuracy <= 0 {
			m.Accuracy = 0
			m.dir = 1
		}
	}
}

func (m *ShotMeter) Reset() {
	*m = ShotMeter{}
}

func (m ShotMeter) Wire() protocol.ShotMeter {
	return protocol.ShotMeter{ShotPower: m.Power, ShotAccuracy: m.Accuracy, LockedPower: m.LockedPower}
}

func (m ShotMeter) accuracyQuality() float64 {
	off := math.Abs(m.Accuracy - meterCenter)
	switch {
	case off <= 10:
		return 1
	case off <= 20:
		return 0.8
	default:
		return 0.3 - (off-20)/30*0.3
	}
}

func (m ShotMeter) powerQuality() float64 {
	switch {
	case m.LockedPower >= 75:
		return 1
	case m.LockedPower >= 50:
		return 0.8 + (m.LockedPower-50)/25*0.2
	default:
		return 0.5 + m.LockedPower/50*0.3
	}
}

// Shoot releases the held ball from shooter toward target. A defending
// opponent in range may block it, which leaves the ball loose with no tracked
// shot.
func (b *Ball) Shoot(shooter, opponent Avatar, target float64, m ShotMeter, cfg Config, rng *rand.Rand) (blocked bool) {
	b.Owner = perspective.LabelNone
	b.InAir = true

	if opponent.Defending &&
		math.Abs(opponent.X-shooter.X) < cfg.BlockRange &&
		math.Abs(opponent.Y-shooter.Y) < blockHeight &&
		rng.Float64() < blockChance {
		b.VX = (rng.Float64() - 0.5) * 200
		b.VY = -100
		b.ShotFrom = nil
		return true
	}

	progress := shooter.JumpTime / typicalJump
	timing := 1 - math.Abs(progress-0.5)*2
	total := timing*0.2 + m.accuracyQuality()*0.8

	dx := target - shooter.X
	dy := cfg.HoopY - (shooter.Y - cfg.PlayerHeight/2)
	distance := math.Hypot(dx, dy)
	fromHoop := math.Abs(dx)

	difficulty := 5.0
	if fromHoop <= cfg.TwoPointRange {
		difficulty = 0.5
	} else if fromHoop < cfg.HalfCourtRange {
		difficulty = 2
	}

	var variance float64
	switch {
	case total >= 0.95:
		variance = 0
	case total >= 0.8:
		variance = 3 * difficulty
	case total >= 0.6:
		variance = 15 * difficulty
	default:
		variance = (1 - total) * 250 * difficulty
	}
	angle := math.Atan2(dy, dx) + (rng.Float64()-0.5)*variance*math.Pi/180

	pq := m.powerQuality()
	power := (cfg.ShotPowerMin + distance/shotReference*(cfg.ShotPowerMax-cfg.ShotPowerMin)) * pq
	b.VX = math.Cos(angle) * power
	b.VY = math.Sin(angle) * power

	minArc := minArcLong * pq
	if fromHoop <= cfg.TwoPointRange {
		minArc = minArcShort * pq
	}
	if b.VY > minArc {
		b.VY = minArc
	}

	b.ShotFrom = &protocol.ShotFrom{X: shooter.X, Y: shooter.Y, Shooter: perspective.LabelSelf, TargetHoop: target}
	return false
}
