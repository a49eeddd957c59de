package court

import "street-hoops/internal/protocol"

// Intents are the discrete inputs consumed once per frame.
type Intents struct {
	Left         bool
	Right        bool
	Jump         bool
	Defend       bool
	ShootAdvance bool
}

type Avatar struct {
	X, Y       float64
	VX, VY     float64
	Grounded   bool
	Defending  bool
	FacingLeft bool
	JumpTime   float64
}

func NewAvatar(x float64, cfg Config) Avatar {
	return Avatar{X: x, Y: cfg.FloorY, Grounded: true}
}

// Step applies intents, gravity and the floor for one frame. It reports
// whether the avatar landed this frame.
func (a *Avatar) Step(in Intents, dt float64, cfg Config) (landed bool) {
	switch {
	case in.Left:
		a.VX = -cfg.MoveSpeed
		a.FacingLeft = true
	case in.Right:
		a.VX = cfg.MoveSpeed
		a.FacingLeft = false
	default:
		a.VX = 0
	}
	a.Defending = in.Defend
	if in.Jump && a.Grounded {
		a.VY = -cfg.JumpPower
		a.Grounded = false
		a.JumpTime = 0
	}

	if !a.Grounded {
		a.VY += cfg.Gravity * dt
		a.JumpTime += dt
	}
	a.X += a.VX * dt
	a.Y += a.VY * dt
	a.X = clamp(a.X, cfg.EdgeMargin, cfg.Width-cfg.EdgeMargin)

	if a.Y >= cfg.FloorY {
		landed = !a.Grounded
		a.Y = cfg.FloorY
		a.VY = 0
		a.Grounded = true
		a.JumpTime = 0
	}
	return landed
}

// Reset puts the avatar back on the floor at x.
func (a *Avatar) Reset(x float64, cfg Config) {
	*a = NewAvatar(x, cfg)
}

func (a Avatar) State() protocol.AvatarState {
	return protocol.AvatarState{X: a.X, Y: a.Y, VX: a.VX, VY: a.VY, IsGrounded: a.Grounded, Defending: a.Defending}
}

// Apply overwrites the avatar from a received snapshot. Last write wins.
func (a *Avatar) Apply(s protocol.AvatarState) {
	a.X, a.Y, a.VX, a.VY = s.X, s.Y, s.VX, s.VY
	a.Grounded = s.IsGrounded
	a.Defending = s.Defending
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
