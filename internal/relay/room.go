package relay

import (
	"time"

	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"
)

type RoomState string

const (
	StateMatched    RoomState = "matched"
	StateReadyLobby RoomState = "ready_lobby"
	StateActive     RoomState = "active"
	StateTornDown   RoomState = "torn_down"
)

// Room is one match between exactly two connections. Slots are fixed at
// creation; slot 1 is the first-queued connection.
type Room struct {
	ID            string
	State         RoomState
	BallAuthority perspective.Slot

	slots   [2]Peer
	ready   [2]bool
	score   protocol.Scoreboard
	started bool

	createdAt     time.Time
	startedAt     time.Time
	timeRemaining float64
	seenScores    map[string]struct{}
}

func newRoom(first, second Peer, now time.Time) *Room {
	rm := &Room{
		ID:            protocol.RoomID(first.ID(), second.ID()),
		State:         StateMatched,
		BallAuthority: perspective.Slot1,
		slots:         [2]Peer{first, second},
		createdAt:     now,
		seenScores:    map[string]struct{}{},
	}
	// Nothing happens between the pairing and the lobby.
	rm.State = StateReadyLobby
	return rm
}

// slotOf returns p's slot, or SlotNone when p is not a participant.
func (rm *Room) slotOf(p Peer) perspective.Slot {
	for i, sp := range rm.slots {
		if sp != nil && sp.ID() == p.ID() {
			return perspective.Slot(i + 1)
		}
	}
	return perspective.SlotNone
}

func (rm *Room) peer(s perspective.Slot) Peer {
	if !s.Valid() {
		return nil
	}
	return rm.slots[s.Index()]
}

func (rm *Room) broadcast(v any) {
	for _, p := range rm.slots {
		p.Send(v)
	}
}

// setReady records a readiness toggle and reports whether it started the
// match. The start transition fires at most once.
func (rm *Room) setReady(s perspective.Slot, ready bool, now time.Time, gameSeconds float64) bool {
	rm.ready[s.Index()] = ready
	if rm.started || !rm.ready[0] || !rm.ready[1] {
		return false
	}
	rm.started = true
	rm.State = StateActive
	rm.startedAt = now
	rm.timeRemaining = gameSeconds
	return true
}

// addScore applies a reported basket. Duplicate event ids are dropped.
func (rm *Room) addScore(scorer perspective.Slot, points int, eventID string) bool {
	if eventID != "" {
		if _, dup := rm.seenScores[eventID]; dup {
			return false
		}
		rm.seenScores[eventID] = struct{}{}
	}
	rm.score.Add(scorer, points)
	return true
}

// RoomSummary is a read-only view of a room for the public API.
type RoomSummary struct {
	ID            string              `json:"id"`
	State         RoomState           `json:"state"`
	Slot1         string              `json:"slot1"`
	Slot2         string              `json:"slot2"`
	Ready         [2]bool             `json:"ready"`
	Score         protocol.Scoreboard `json:"score"`
	BallAuthority int                 `json:"ball_authority"`
	TimeRemaining float64             `json:"time_remaining"`
	CreatedAt     time.Time           `json:"created_at"`
}

func (rm *Room) summary() RoomSummary {
	return RoomSummary{
		ID:            rm.ID,
		State:         rm.State,
		Slot1:         rm.slots[0].ID(),
		Slot2:         rm.slots[1].ID(),
		Ready:         rm.ready,
		Score:         rm.score,
		BallAuthority: int(rm.BallAuthority),
		TimeRemaining: rm.timeRemaining,
		CreatedAt:     rm.createdAt,
	}
}
