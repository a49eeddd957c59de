package relay

import (
	"time"

	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"
)

// Reasons a started match ended.
const (
	EndScore        = protocol.ReasonScore
	EndTime         = protocol.ReasonTime
	EndLeft         = "left"
	EndDisconnected = "disconnected"
)

// MatchResult describes a match that reached the Active state and then ended.
type MatchResult struct {
	RoomID    string
	Slot1     string
	Slot2     string
	Score     protocol.Scoreboard
	Winner    perspective.Slot
	Reason    string
	StartedAt time.Time
	EndedAt   time.Time
}

// MatchObserver is told about finished matches. It is called outside the
// registry lock on the goroutine that ended the match, so it should return
// quickly.
type MatchObserver interface {
	OnMatchFinished(res MatchResult)
}

func (r *Registry) SetMatchObserver(obs MatchObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = obs
}
