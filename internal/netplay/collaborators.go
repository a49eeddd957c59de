package netplay

import (
	"street-hoops/internal/court"
	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"
)

// InputSource supplies the local player's intents once per frame.
type InputSource interface {
	Intents(f Frame) court.Intents
}

type Cue string

const (
	CuePickup Cue = "pickup"
	CueScore  Cue = "score"
	CueBlock  Cue = "block"
	CueShoot  Cue = "shoot"
	CueJump   Cue = "jump"
)

// CueSink plays audio feedback. Calls are fire-and-forget.
type CueSink interface {
	Cue(c Cue)
}

// Renderer draws a frame. It must treat the frame as read-only.
type Renderer interface {
	Render(f Frame)
}

type nopCues struct{}

func (nopCues) Cue(Cue) {}

// Frame is a copy of the client state for collaborators.
type Frame struct {
	Phase         Phase
	Slot          perspective.Slot
	Authority     bool
	Self          court.Avatar
	Opponent      court.Avatar
	Ball          court.Ball
	SelfScore     int
	OpponentScore int
	TimeRemaining float64
	Meter         court.ShotMeter
	OpponentMeter protocol.ShotMeter
	Status        string
}
