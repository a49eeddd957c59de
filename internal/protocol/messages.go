package protocol

import "street-hoops/internal/perspective"

// Base is decoded first to route a frame by its type.
type Base struct {
	Type string `json:"type"`
}

// RoomRef is the common shape of requests that only name a room.
type RoomRef struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

type AvatarState struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	VX         float64 `json:"vx"`
	VY         float64 `json:"vy"`
	IsGrounded bool    `json:"isGrounded"`
	Defending  bool    `json:"defending"`
}

// ShotFrom records where a shot was released. Shooter is a label from the
// sender's perspective; TargetHoop is a shared court x coordinate.
type ShotFrom struct {
	X          float64           `json:"x"`
	Y          float64           `json:"y"`
	Shooter    perspective.Label `json:"shooter"`
	TargetHoop float64           `json:"targetHoop"`
}

type BallState struct {
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	VX       float64           `json:"vx"`
	VY       float64           `json:"vy"`
	InAir    bool              `json:"inAir"`
	Owner    perspective.Label `json:"owner"`
	ShotFrom *ShotFrom         `json:"shotFrom"`
}

// Scoreboard is keyed by slot on the wire: {"1": n, "2": n}.
type Scoreboard struct {
	P1 int `json:"1"`
	P2 int `json:"2"`
}

func (s Scoreboard) Get(slot perspective.Slot) int {
	switch slot {
	case perspective.Slot1:
		return s.P1
	case perspective.Slot2:
		return s.P2
	default:
		return 0
	}
}

func (s *Scoreboard) Add(slot perspective.Slot, points int) {
	switch slot {
	case perspective.Slot1:
		s.P1 += points
	case perspective.Slot2:
		s.P2 += points
	}
}

// Leader returns the slot ahead on points, or SlotNone on a tie.
func (s Scoreboard) Leader() perspective.Slot {
	switch {
	case s.P1 > s.P2:
		return perspective.Slot1
	case s.P2 > s.P1:
		return perspective.Slot2
	default:
		return perspective.SlotNone
	}
}

// Client to server.

type PlayerReady struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Ready  bool   `json:"ready"`
}

type PlayerMove struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	AvatarState
}

type BallUpdate struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	BallState
}

type BallPickup struct {
	Type   string            `json:"type"`
	RoomID string            `json:"roomId"`
	Owner  perspective.Label `json:"owner"`
}

type PlayerScored struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	Scorer  int    `json:"scorer"`
	Points  int    `json:"points"`
	EventID string `json:"eventId,omitempty"`
}

type ShotMeter struct {
	ShotPower    float64 `json:"shotPower"`
	ShotAccuracy float64 `json:"shotAccuracy"`
	LockedPower  float64 `json:"lockedPower"`
}

type PlayerShoot struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	ShotMeter
}

type GameStateUpdate struct {
	Type          string            `json:"type"`
	RoomID        string            `json:"roomId"`
	TimeRemaining float64           `json:"timeRemaining"`
	BallOwner     perspective.Label `json:"ballOwner"`
}

// Server to client.

type Notice struct {
	Type string `json:"type"`
}

// BothReady starts the match. GameSeconds is the match length the relay was
// configured with; 0 leaves the client default.
type BothReady struct {
	Type        string  `json:"type"`
	GameSeconds float64 `json:"gameSeconds,omitempty"`
}

type Connected struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type MatchFound struct {
	Type         string `json:"type"`
	RoomID       string `json:"roomId"`
	PlayerNumber int    `json:"playerNumber"`
	OpponentID   string `json:"opponentId"`
}

type MatchRejected struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type OpponentReadyState struct {
	Type  string `json:"type"`
	Ready bool   `json:"ready"`
}

type OpponentMove struct {
	Type string `json:"type"`
	AvatarState
}

type BallSync struct {
	Type string `json:"type"`
	BallState
}

type BallPickupSync struct {
	Type  string            `json:"type"`
	Owner perspective.Label `json:"owner"`
}

type ScoreUpdate struct {
	Type   string     `json:"type"`
	Score  Scoreboard `json:"score"`
	Scorer int        `json:"scorer"`
	Points int        `json:"points"`
}

type OpponentShoot struct {
	Type string `json:"type"`
	ShotMeter
}

type GameStateSync struct {
	Type          string            `json:"type"`
	TimeRemaining float64           `json:"timeRemaining"`
	BallOwner     perspective.Label `json:"ballOwner"`
}

type GameOver struct {
	Type   string     `json:"type"`
	Winner int        `json:"winner"`
	Score  Scoreboard `json:"score"`
	Reason string     `json:"reason"`
}

func NewNotice(event string) Notice {
	return Notice{Type: event}
}
