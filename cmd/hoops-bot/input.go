package main

import (
	"math"
	"math/rand"

	"street-hoops/internal/court"
	"street-hoops/internal/netplay"
	"street-hoops/internal/perspective"
)

const shootPressEvery = 12

// scriptedInput chases a loose ball, walks the ball toward its target hoop
// and jump-shoots from mid range.
type scriptedInput struct {
	cfg       court.Config
	rng       *rand.Rand
	shotRange float64
	frame     int
}

func newScriptedInput(rng *rand.Rand) *scriptedInput {
	return &scriptedInput{cfg: court.DefaultConfig(), rng: rng, shotRange: 120 + rng.Float64()*200}
}

func (in *scriptedInput) Intents(f netplay.Frame) court.Intents {
	in.frame++
	var out court.Intents
	if f.Phase != netplay.PhaseActive {
		return out
	}
	self := f.Self

	switch f.Ball.Owner {
	case perspective.LabelSelf:
		target := in.cfg.TargetHoop(f.Slot)
		d := target - self.X
		if math.Abs(d) > in.shotRange {
			out.Left, out.Right = d < 0, d > 0
			return out
		}
		if self.Grounded && !f.Meter.Charging() {
			out.Jump = true
			return out
		}
		out.ShootAdvance = !self.Grounded && in.frame%shootPressEvery == 0
	case perspective.LabelOpponent:
		d := f.Opponent.X - self.X
		out.Left, out.Right = d < -10, d > 10
		out.Defend = math.Abs(d) < in.cfg.BlockRange
		out.Jump = out.Defend && !f.Opponent.Grounded && self.Grounded
	default:
		d := f.Ball.X - self.X
		out.Left, out.Right = d < -5, d > 5
		out.Jump = f.Ball.InAir && math.Abs(d) < in.cfg.StealRange && in.rng.Intn(4) == 0
	}
	return out
}
