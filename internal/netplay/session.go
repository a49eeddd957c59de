// Package netplay is the client half of the relay protocol. A Session tracks
// the matchmaking and lobby phases, mirrors the room score and keeps the
// local court consistent with the peer: the slot 1 connection simulates the
// loose ball, the other side replays its snapshots.
//
// A Session is not safe for concurrent use. Callers feed it inbound frames
// and frame ticks from one loop, which gives the run-to-completion ordering
// the protocol assumes.
package netplay

import (
	"errors"
	"math/rand"
	"time"

	"street-hoops/internal/court"
	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"

	"github.com/rs/zerolog/log"
)

var (
	ErrWrongPhase      = errors.New("wrong_phase")
	ErrRoomIDMismatch  = errors.New("room_id_mismatch")
	ErrUnknownEvent    = errors.New("unknown_event")
	ErrMalformedPacket = errors.New("malformed_packet")
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSearching
	PhaseLobby
	PhaseActive
	PhaseOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSearching:
		return "searching"
	case PhaseLobby:
		return "lobby"
	case PhaseActive:
		return "active"
	case PhaseOver:
		return "over"
	default:
		return "idle"
	}
}

// Exit tells the UI where to send the player after a room ended.
type Exit int

const (
	ExitNone Exit = iota
	ExitToMatchmaking
	ExitToMenu
)

type Option func(*Session)

func WithConfig(cfg court.Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

func WithCues(c CueSink) Option {
	return func(s *Session) { s.cues = c }
}

func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rng = r }
}

type Session struct {
	out   Sender
	codec protocol.Codec
	cfg   court.Config
	cues  CueSink
	rng   *rand.Rand

	phase      Phase
	exit       Exit
	status     string
	connID     string
	roomID     string
	opponentID string
	slot       perspective.Slot

	ready         bool
	opponentReady bool

	self          court.Avatar
	opponent      court.Avatar
	ball          court.Ball
	meter         court.ShotMeter
	opponentMeter protocol.ShotMeter
	score         protocol.Scoreboard
	timeRemaining float64
	winner        perspective.Slot
	scoreSeq      int
}

func NewSession(out Sender, codec protocol.Codec, opts ...Option) *Session {
	s := &Session{
		out:   out,
		codec: codec,
		cfg:   court.DefaultConfig(),
		cues:  nopCues{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

func (s *Session) Phase() Phase             { return s.phase }
func (s *Session) Exit() Exit               { return s.exit }
func (s *Session) RoomID() string           { return s.roomID }
func (s *Session) Slot() perspective.Slot   { return s.slot }
func (s *Session) ConnID() string           { return s.connID }
func (s *Session) Winner() perspective.Slot { return s.winner }
func (s *Session) OpponentReady() bool      { return s.opponentReady }

// IsAuthority reports whether this connection simulates the loose ball.
func (s *Session) IsAuthority() bool {
	return s.slot == perspective.Slot1
}

func (s *Session) Frame() Frame {
	return Frame{
		Phase:         s.phase,
		Slot:          s.slot,
		Authority:     s.IsAuthority(),
		Self:          s.self,
		Opponent:      s.opponent,
		Ball:          s.ball,
		SelfScore:     s.score.Get(s.slot),
		OpponentScore: s.score.Get(s.slot.Other()),
		TimeRemaining: s.timeRemaining,
		Meter:         s.meter,
		OpponentMeter: s.opponentMeter,
		Status:        s.status,
	}
}

func (s *Session) FindMatch() error {
	if s.phase == PhaseLobby || s.phase == PhaseActive {
		return ErrWrongPhase
	}
	s.resetRoom()
	s.phase = PhaseSearching
	s.exit = ExitNone
	s.status = "Connecting to server..."
	return s.out.Send(protocol.NewNotice(protocol.EventFindMatch))
}

func (s *Session) CancelSearch() error {
	if s.phase != PhaseSearching {
		return ErrWrongPhase
	}
	s.phase = PhaseIdle
	s.status = ""
	return s.out.Send(protocol.NewNotice(protocol.EventCancelSearch))
}

func (s *Session) SetReady(ready bool) error {
	if s.phase != PhaseLobby {
		return ErrWrongPhase
	}
	s.ready = ready
	return s.out.Send(protocol.PlayerReady{Type: protocol.EventPlayerReady, RoomID: s.roomID, Ready: ready})
}

// Leave abandons the current room: a lobby departure sends the peer back to
// matchmaking, an in-game one ends the peer's match.
func (s *Session) Leave() error {
	var msg protocol.RoomRef
	switch s.phase {
	case PhaseLobby:
		msg = protocol.RoomRef{Type: protocol.EventLeaveLobby, RoomID: s.roomID}
	case PhaseActive:
		msg = protocol.RoomRef{Type: protocol.EventLeaveRoom, RoomID: s.roomID}
	default:
		return ErrWrongPhase
	}
	s.endRoom(ExitToMenu, "")
	return s.out.Send(msg)
}

// Handle applies one relay frame.
func (s *Session) Handle(frame []byte) error {
	typ, err := protocol.PeekType(s.codec, frame)
	if err != nil {
		return ErrMalformedPacket
	}
	switch typ {
	case protocol.EventConnected:
		var m protocol.Connected
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		s.connID = m.ID
	case protocol.EventWaitingForOpponent:
		s.phase = PhaseSearching
		s.status = "Waiting for opponent..."
	case protocol.EventMatchFound:
		var m protocol.MatchFound
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		return s.onMatchFound(m)
	case protocol.EventMatchRejected:
		var m protocol.MatchRejected
		_ = s.codec.Decode(frame, &m)
		s.status = "Match request rejected: " + m.Reason
	case protocol.EventSearchTimeout:
		s.endRoom(ExitToMenu, "No opponent found")
	case protocol.EventOpponentReadyState:
		var m protocol.OpponentReadyState
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		if s.phase == PhaseLobby {
			s.opponentReady = m.Ready
		}
	case protocol.EventBothReady:
		var m protocol.BothReady
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		s.onBothReady(m)
	case protocol.EventOpponentLeftLobby:
		s.endRoom(ExitToMatchmaking, "Opponent left the lobby")
	case protocol.EventLobbyExpired:
		s.endRoom(ExitToMatchmaking, "Lobby expired")
	case protocol.EventOpponentDisconnected:
		exit := ExitToMenu
		if s.phase == PhaseLobby {
			exit = ExitToMatchmaking
		}
		s.endRoom(exit, "Opponent disconnected")
	case protocol.EventOpponentLeft:
		s.endRoom(ExitToMenu, "Opponent left the game")
	case protocol.EventGameOver:
		var m protocol.GameOver
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		s.onGameOver(m)
	default:
		return s.handleGameplay(typ, frame)
	}
	return nil
}

func (s *Session) onMatchFound(m protocol.MatchFound) error {
	slot, err := perspective.ParseSlot(m.PlayerNumber)
	if err != nil {
		return err
	}
	slot1, slot2, ok := protocol.ParseRoomID(m.RoomID)
	own, other := slot1, slot2
	if slot == perspective.Slot2 {
		own, other = slot2, slot1
	}
	if !ok || other != m.OpponentID || (s.connID != "" && own != s.connID) {
		log.Warn().Str("room_id", m.RoomID).Str("conn_id", s.connID).Str("opponent_id", m.OpponentID).Msg("room_id_mismatch")
		return ErrRoomIDMismatch
	}
	s.resetRoom()
	s.roomID = m.RoomID
	s.opponentID = m.OpponentID
	s.slot = slot
	s.phase = PhaseLobby
	s.exit = ExitNone
	s.status = "Match found!"
	s.resetCourt(perspective.Slot1)
	log.Debug().Str("room_id", s.roomID).Int("slot", int(slot)).Msg("match_found")
	return nil
}

func (s *Session) onBothReady(m protocol.BothReady) {
	if s.phase != PhaseLobby {
		return
	}
	s.phase = PhaseActive
	s.opponentReady = true
	s.timeRemaining = s.cfg.GameTime
	if m.GameSeconds > 0 {
		s.timeRemaining = m.GameSeconds
	}
	s.status = ""
}

func (s *Session) onGameOver(m protocol.GameOver) {
	if s.phase != PhaseActive {
		return
	}
	s.score = m.Score
	s.winner = perspective.Slot(m.Winner)
	s.phase = PhaseOver
	s.exit = ExitToMenu
	switch {
	case s.winner == s.slot:
		s.status = "YOU WIN!"
	case s.winner == perspective.SlotNone:
		s.status = "DRAW"
	default:
		s.status = "OPPONENT WINS"
	}
}

func (s *Session) endRoom(exit Exit, status string) {
	s.phase = PhaseIdle
	s.exit = exit
	s.status = status
	s.roomID = ""
	s.opponentID = ""
	s.ready = false
	s.opponentReady = false
}

func (s *Session) resetRoom() {
	s.roomID = ""
	s.opponentID = ""
	s.slot = perspective.SlotNone
	s.ready = false
	s.opponentReady = false
	s.score = protocol.Scoreboard{}
	s.winner = perspective.SlotNone
	s.scoreSeq = 0
}

// resetCourt returns both avatars to their spawn points and hands the ball to
// receiver.
func (s *Session) resetCourt(receiver perspective.Slot) {
	s.self.Reset(s.cfg.SpawnX(s.slot), s.cfg)
	s.opponent.Reset(s.cfg.SpawnX(s.slot.Other()), s.cfg)
	s.meter.Reset()
	s.opponentMeter = protocol.ShotMeter{}
	s.ball = court.Ball{Owner: perspective.LabelFor(receiver, s.slot)}
	if s.ball.Owner == perspective.LabelSelf {
		s.ball.Carry(s.self, s.cfg)
	} else {
		s.ball.Carry(s.opponent, s.cfg)
	}
}
