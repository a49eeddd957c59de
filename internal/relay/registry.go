// Package relay is the matchmaking and room server. A Registry owns the
// waiting queue and the room map; every inbound message is handled under its
// lock, so room mutations are serialized without per-room goroutines.
package relay

import (
	"sort"
	"sync"
	"time"

	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"

	"github.com/rs/zerolog/log"
)

// Peer is one client connection as the registry sees it. Send must not block.
type Peer interface {
	ID() string
	Send(v any)
}

type Options struct {
	// WinScore ends a match when a slot reaches it; 0 disables.
	WinScore    int
	GameSeconds float64
	QueueTTL    time.Duration
	LobbyTTL    time.Duration
}

type member struct {
	peer     Peer
	room     *Room
	queued   bool
	queuedAt time.Time
}

type Registry struct {
	opts Options
	now  func() time.Time

	mu       sync.Mutex
	waiting  []*member
	members  map[string]*member
	rooms    map[string]*Room
	observer MatchObserver
}

func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:    opts,
		now:     time.Now,
		members: map[string]*member{},
		rooms:   map[string]*Room{},
	}
}

// Connect registers a new connection and tells it its id.
func (r *Registry) Connect(p Peer) {
	r.mu.Lock()
	r.members[p.ID()] = &member{peer: p}
	r.mu.Unlock()
	metricConnectionsTotal.Add(1)
	metricConnectionsActive.Add(1)
	p.Send(protocol.Connected{Type: protocol.EventConnected, ID: p.ID()})
}

// RequestMatch pairs p with the earliest waiting connection, or queues it.
func (r *Registry) RequestMatch(p Peer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := r.members[p.ID()]
	if m == nil {
		return ErrUnknownConn
	}
	if m.room != nil {
		metricMatchRejected.Add(1)
		log.Info().Str("conn_id", p.ID()).Str("room_id", m.room.ID).Msg("match_rejected")
		p.Send(protocol.MatchRejected{Type: protocol.EventMatchRejected, Reason: protocol.ReasonAlreadyInRoom})
		return ErrAlreadyInRoom
	}
	if m.queued {
		p.Send(protocol.NewNotice(protocol.EventWaitingForOpponent))
		return nil
	}

	if len(r.waiting) == 0 {
		m.queued = true
		m.queuedAt = r.now()
		r.waiting = append(r.waiting, m)
		log.Info().Str("conn_id", p.ID()).Int("queue_len", len(r.waiting)).Msg("player_waiting")
		p.Send(protocol.NewNotice(protocol.EventWaitingForOpponent))
		return nil
	}

	first := r.waiting[0]
	r.waiting = r.waiting[1:]
	first.queued = false

	rm := newRoom(first.peer, p, r.now())
	first.room = rm
	m.room = rm
	r.rooms[rm.ID] = rm
	metricMatchesCreated.Add(1)
	log.Info().Str("room_id", rm.ID).Str("slot1", first.peer.ID()).Str("slot2", p.ID()).Msg("match_created")

	first.peer.Send(protocol.MatchFound{Type: protocol.EventMatchFound, RoomID: rm.ID, PlayerNumber: 1, OpponentID: p.ID()})
	p.Send(protocol.MatchFound{Type: protocol.EventMatchFound, RoomID: rm.ID, PlayerNumber: 2, OpponentID: first.peer.ID()})
	return nil
}

// CancelSearch removes p from the waiting queue. Not queued is a no-op.
func (r *Registry) CancelSearch(p Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m := r.members[p.ID()]; m != nil {
		r.dequeueLocked(m)
	}
}

func (r *Registry) dequeueLocked(m *member) bool {
	if !m.queued {
		return false
	}
	for i, w := range r.waiting {
		if w == m {
			r.waiting = append(r.waiting[:i], r.waiting[i+1:]...)
			break
		}
	}
	m.queued = false
	return true
}

// roomFor returns the room roomID if p participates in it and it is in want.
func (r *Registry) roomFor(p Peer, roomID string, want RoomState) (*Room, perspective.Slot) {
	rm := r.rooms[roomID]
	if rm == nil || rm.State != want {
		return nil, perspective.SlotNone
	}
	slot := rm.slotOf(p)
	if !slot.Valid() {
		return nil, perspective.SlotNone
	}
	return rm, slot
}

// SetReady records a lobby readiness toggle, tells the peer, and starts the
// match the first time both slots are ready.
func (r *Registry) SetReady(p Peer, roomID string, ready bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, slot := r.roomFor(p, roomID, StateReadyLobby)
	if rm == nil {
		log.Debug().Str("conn_id", p.ID()).Str("room_id", roomID).Msg("ready_ignored")
		return
	}
	started := rm.setReady(slot, ready, r.now(), r.opts.GameSeconds)
	log.Info().Str("room_id", rm.ID).Int("slot", int(slot)).Bool("ready", ready).Msg("ready_state")
	rm.peer(slot.Other()).Send(protocol.OpponentReadyState{Type: protocol.EventOpponentReadyState, Ready: ready})
	if started {
		metricMatchesStarted.Add(1)
		log.Info().Str("room_id", rm.ID).Msg("match_started")
		rm.broadcast(protocol.BothReady{Type: protocol.EventBothReady, GameSeconds: r.opts.GameSeconds})
	}
}

// Leave handles leaveLobby and leaveRoom. The peer is told which phase the
// room was in so it can return to matchmaking or to the menu.
func (r *Registry) Leave(p Peer, roomID string) {
	r.mu.Lock()
	rm := r.rooms[roomID]
	if rm == nil || !rm.slotOf(p).Valid() {
		r.mu.Unlock()
		return
	}
	slot := rm.slotOf(p)
	event := protocol.EventOpponentLeft
	if rm.State == StateReadyLobby {
		event = protocol.EventOpponentLeftLobby
	}
	rm.peer(slot.Other()).Send(protocol.NewNotice(event))
	res := r.teardownLocked(rm, EndLeft, slot.Other())
	r.mu.Unlock()
	r.notify(res)
}

// Disconnect runs the transport-failure path for p.
func (r *Registry) Disconnect(p Peer) {
	r.mu.Lock()
	m := r.members[p.ID()]
	if m == nil {
		r.mu.Unlock()
		return
	}
	delete(r.members, p.ID())
	metricConnectionsActive.Add(-1)
	r.dequeueLocked(m)

	var res *MatchResult
	if rm := m.room; rm != nil {
		slot := rm.slotOf(p)
		rm.peer(slot.Other()).Send(protocol.NewNotice(protocol.EventOpponentDisconnected))
		res = r.teardownLocked(rm, EndDisconnected, slot.Other())
	}
	r.mu.Unlock()
	r.notify(res)
}

// teardownLocked removes rm and frees both participants. It returns a result
// for matches that had started.
func (r *Registry) teardownLocked(rm *Room, reason string, winner perspective.Slot) *MatchResult {
	wasActive := rm.State == StateActive
	rm.State = StateTornDown
	delete(r.rooms, rm.ID)
	for _, p := range rm.slots {
		if m := r.members[p.ID()]; m != nil && m.room == rm {
			m.room = nil
		}
	}
	metricRoomsTornDown.Add(1)
	log.Info().Str("room_id", rm.ID).Str("reason", reason).Int("score_1", rm.score.P1).Int("score_2", rm.score.P2).Msg("room_closed")
	if !wasActive {
		return nil
	}
	metricMatchesFinished.Add(1)
	return &MatchResult{
		RoomID:    rm.ID,
		Slot1:     rm.slots[0].ID(),
		Slot2:     rm.slots[1].ID(),
		Score:     rm.score,
		Winner:    winner,
		Reason:    reason,
		StartedAt: rm.startedAt,
		EndedAt:   r.now(),
	}
}

func (r *Registry) notify(res *MatchResult) {
	if res == nil {
		return
	}
	r.mu.Lock()
	obs := r.observer
	r.mu.Unlock()
	if obs != nil {
		obs.OnMatchFinished(*res)
	}
}

// Rooms lists live rooms, oldest first.
func (r *Registry) Rooms() []RoomSummary {
	r.mu.Lock()
	out := make([]RoomSummary, 0, len(r.rooms))
	for _, rm := range r.rooms {
		out = append(out, rm.summary())
	}
	r.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

type Stats struct {
	Connections int `json:"connections"`
	Waiting     int `json:"waiting"`
	Lobby       int `json:"lobby"`
	Active      int `json:"active"`
}

func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	st := Stats{Connections: len(r.members), Waiting: len(r.waiting)}
	for _, rm := range r.rooms {
		switch rm.State {
		case StateReadyLobby:
			st.Lobby++
		case StateActive:
			st.Active++
		}
	}
	return st
}
