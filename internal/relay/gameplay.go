package relay

import (
	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"

	"github.com/rs/zerolog/log"
)

// forward sends v to p's opponent in an active room. Payloads are relayed
// verbatim; labels stay in the sender's perspective.
func (r *Registry) forward(p Peer, roomID string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rm, slot := r.roomFor(p, roomID, StateActive)
	if rm == nil {
		return
	}
	metricMessagesRelayed.Add(1)
	rm.peer(slot.Other()).Send(v)
}

func (r *Registry) RelayMove(p Peer, roomID string, st protocol.AvatarState) {
	r.forward(p, roomID, protocol.OpponentMove{Type: protocol.EventOpponentMove, AvatarState: st})
}

func (r *Registry) RelayBall(p Peer, roomID string, st protocol.BallState) {
	r.forward(p, roomID, protocol.BallSync{Type: protocol.EventBallSync, BallState: st})
}

func (r *Registry) RelayPickup(p Peer, roomID string, owner perspective.Label) {
	r.forward(p, roomID, protocol.BallPickupSync{Type: protocol.EventBallPickupSync, Owner: owner})
}

func (r *Registry) RelayShoot(p Peer, roomID string, meter protocol.ShotMeter) {
	r.forward(p, roomID, protocol.OpponentShoot{Type: protocol.EventOpponentShoot, ShotMeter: meter})
}

// UpdateGameState relays the clock. Only the ball authority's clock is kept,
// and it ends the match when it runs out.
func (r *Registry) UpdateGameState(p Peer, msg protocol.GameStateUpdate) {
	r.mu.Lock()
	rm, slot := r.roomFor(p, msg.RoomID, StateActive)
	if rm == nil {
		r.mu.Unlock()
		return
	}
	metricMessagesRelayed.Add(1)
	rm.peer(slot.Other()).Send(protocol.GameStateSync{
		Type:          protocol.EventGameStateSync,
		TimeRemaining: msg.TimeRemaining,
		BallOwner:     msg.BallOwner,
	})

	var res *MatchResult
	if slot == rm.BallAuthority {
		rm.timeRemaining = msg.TimeRemaining
		if rm.timeRemaining <= 0 {
			res = r.finishLocked(rm, rm.score.Leader(), protocol.ReasonTime)
		}
	}
	r.mu.Unlock()
	r.notify(res)
}

// ReportScore applies a basket reported by either participant and broadcasts
// the combined score to both.
func (r *Registry) ReportScore(p Peer, msg protocol.PlayerScored) {
	r.mu.Lock()
	rm, _ := r.roomFor(p, msg.RoomID, StateActive)
	scorer := perspective.Slot(msg.Scorer)
	if rm == nil || !scorer.Valid() || msg.Points < 0 {
		r.mu.Unlock()
		log.Debug().Str("conn_id", p.ID()).Str("room_id", msg.RoomID).Msg("score_ignored")
		return
	}
	if !rm.addScore(scorer, msg.Points, msg.EventID) {
		r.mu.Unlock()
		return
	}
	log.Info().Str("room_id", rm.ID).Int("scorer", msg.Scorer).Int("points", msg.Points).
		Int("score_1", rm.score.P1).Int("score_2", rm.score.P2).Msg("score_update")
	rm.broadcast(protocol.ScoreUpdate{Type: protocol.EventScoreUpdate, Score: rm.score, Scorer: msg.Scorer, Points: msg.Points})

	var res *MatchResult
	if r.opts.WinScore > 0 && rm.score.Get(scorer) >= r.opts.WinScore {
		res = r.finishLocked(rm, scorer, protocol.ReasonScore)
	}
	r.mu.Unlock()
	r.notify(res)
}

func (r *Registry) finishLocked(rm *Room, winner perspective.Slot, reason string) *MatchResult {
	rm.broadcast(protocol.GameOver{Type: protocol.EventGameOver, Winner: int(winner), Score: rm.score, Reason: reason})
	return r.teardownLocked(rm, reason, winner)
}
