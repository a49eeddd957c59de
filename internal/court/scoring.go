package court

import (
	"math"

	"street-hoops/internal/protocol"
)

const rimHeightTolerance = 30

// Points is 2 inside TwoPointRange, 5 from HalfCourtRange or further, and 3
// in between.
func Points(shot protocol.ShotFrom, cfg Config) int {
	d := math.Abs(shot.X - shot.TargetHoop)
	switch {
	case d >= cfg.HalfCourtRange:
		return 5
	case d > cfg.TwoPointRange:
		return 3
	default:
		return 2
	}
}

// detectionRadius widens the hoop for close shots and narrows it for long ones.
func detectionRadius(shot protocol.ShotFrom, cfg Config) float64 {
	d := math.Abs(shot.X - shot.TargetHoop)
	switch {
	case d <= cfg.TwoPointRange:
		return cfg.HoopRadius + 20
	case d < cfg.HalfCourtRange:
		return cfg.HoopRadius + 5
	default:
		return cfg.HoopRadius - 5
	}
}

// Basket is a made shot found by CheckBasket.
type Basket struct {
	Shot   protocol.ShotFrom
	Points int
}

// CheckBasket tests a descending tracked shot against the hoop it was aimed
// at. A ball through the other hoop scores nothing. A made shot clears
// ShotFrom so a single shot scores at most once.
func (b *Ball) CheckBasket(cfg Config) (Basket, bool) {
	if !b.InAir || b.VY <= 0 || b.ShotFrom == nil {
		return Basket{}, false
	}
	shot := *b.ShotFrom
	if math.Abs(b.X-shot.TargetHoop) >= detectionRadius(shot, cfg) || math.Abs(b.Y-cfg.HoopY) >= rimHeightTolerance {
		return Basket{}, false
	}
	b.ShotFrom = nil
	return Basket{Shot: shot, Points: Points(shot, cfg)}, true
}
