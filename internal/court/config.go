// Package court holds the client-local simulation: avatars, the ball, the shot
// meter and basket detection. It never talks to the network; the netplay
// package decides which side is allowed to run which step.
package court

import "street-hoops/internal/perspective"

// Config is the court geometry and physics tuning, in pixels and seconds.
type Config struct {
	Width  float64
	FloorY float64

	Gravity     float64
	JumpPower   float64
	MoveSpeed   float64
	BallGravity float64
	EdgeMargin  float64

	ShotPowerMin float64
	ShotPowerMax float64

	PlayerHeight float64
	BallRadius   float64

	HoopLeftX  float64
	HoopRightX float64
	HoopY      float64
	HoopRadius float64

	BlockRange float64
	StealRange float64

	TwoPointRange  float64
	HalfCourtRange float64

	// GameTime is the match length used when the relay does not send one.
	GameTime float64
}

func DefaultConfig() Config {
	return Config{
		Width:          800,
		FloorY:         500,
		Gravity:        1200,
		JumpPower:      500,
		MoveSpeed:      250,
		BallGravity:    800,
		EdgeMargin:     50,
		ShotPowerMin:   400,
		ShotPowerMax:   700,
		PlayerHeight:   60,
		BallRadius:     10,
		HoopLeftX:      100,
		HoopRightX:     700,
		HoopY:          250,
		HoopRadius:     35,
		BlockRange:     80,
		StealRange:     40,
		TwoPointRange:  150,
		HalfCourtRange: 350,
		GameTime:       300,
	}
}

// TargetHoop is the x coordinate of the hoop a slot attacks. Slot 1 starts on
// the right and shoots left; slot 2 mirrors it.
func (c Config) TargetHoop(s perspective.Slot) float64 {
	if s == perspective.Slot2 {
		return c.HoopRightX
	}
	return c.HoopLeftX
}

// SpawnX is where a slot's avatar starts and returns to after a basket.
func (c Config) SpawnX(s perspective.Slot) float64 {
	if s == perspective.Slot2 {
		return 200
	}
	return 600
}
