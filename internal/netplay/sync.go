package netplay

import (
	"math"
	"strconv"

	"street-hoops/internal/court"
	"street-hoops/internal/perspective"
	"street-hoops/internal/protocol"
)

// Step advances the local court by dt seconds. The order is fixed: meter,
// shot input, own avatar, ball, scoring, clock. Only the authority integrates
// a loose ball, decides pickups, detects baskets and runs the clock; the other
// side waits for snapshots.
func (s *Session) Step(dt float64, in court.Intents) error {
	if s.phase != PhaseActive {
		return nil
	}
	s.meter.Tick(dt)

	if in.ShootAdvance {
		if err := s.advanceShot(); err != nil {
			return err
		}
	}

	if !s.meter.Charging() {
		if in.Jump && s.self.Grounded {
			s.cues.Cue(CueJump)
		}
		if landed := s.self.Step(in, dt, s.cfg); landed {
			s.meter.Reset()
		}
	}
	if err := s.out.Send(protocol.PlayerMove{Type: protocol.EventPlayerMove, RoomID: s.roomID, AvatarState: s.self.State()}); err != nil {
		return err
	}

	if err := s.stepBall(dt); err != nil {
		return err
	}
	return s.tickClock(dt)
}

func (s *Session) advanceShot() error {
	release, ok := s.meter.Advance(s.self, s.ball.Owner == perspective.LabelSelf)
	if !ok {
		return nil
	}
	if !release {
		return s.out.Send(protocol.PlayerShoot{Type: protocol.EventPlayerShoot, RoomID: s.roomID, ShotMeter: s.meter.Wire()})
	}

	blocked := s.ball.Shoot(s.self, s.opponent, s.cfg.TargetHoop(s.slot), s.meter, s.cfg, s.rng)
	s.meter.Reset()
	if blocked {
		s.cues.Cue(CueBlock)
	} else {
		s.cues.Cue(CueShoot)
	}
	return s.sendBall()
}

func (s *Session) stepBall(dt float64) error {
	switch s.ball.Owner {
	case perspective.LabelSelf:
		s.ball.Carry(s.self, s.cfg)
		return s.sendBall()
	case perspective.LabelOpponent:
		s.ball.Carry(s.opponent, s.cfg)
		return nil
	}
	if !s.IsAuthority() {
		return nil
	}

	if s.ball.InAir {
		s.ball.Integrate(dt, s.cfg)
		if basket, ok := s.ball.CheckBasket(s.cfg); ok {
			return s.reportBasket(basket)
		}
		return s.sendBall()
	}

	owner := s.ball.DecidePickup(s.self, s.opponent, s.cfg)
	if owner == perspective.LabelNone {
		return nil
	}
	return s.givePossession(owner)
}

// reportBasket tells the relay which slot scored and hands the ball to the
// side that was scored upon. The score itself only changes when scoreUpdate
// comes back.
func (s *Session) reportBasket(b court.Basket) error {
	scorer := perspective.SlotFor(b.Shot.Shooter, s.slot)
	if !scorer.Valid() {
		return nil
	}
	s.scoreSeq++
	msg := protocol.PlayerScored{
		Type:    protocol.EventPlayerScored,
		RoomID:  s.roomID,
		Scorer:  int(scorer),
		Points:  b.Points,
		EventID: s.connID + "-" + strconv.Itoa(s.scoreSeq),
	}
	if err := s.out.Send(msg); err != nil {
		return err
	}
	return s.givePossession(perspective.LabelFor(scorer.Other(), s.slot))
}

func (s *Session) givePossession(owner perspective.Label) error {
	s.ball.Owner = owner
	s.ball.InAir = false
	s.ball.ShotFrom = nil
	if owner == perspective.LabelSelf {
		s.ball.Carry(s.self, s.cfg)
	} else {
		s.ball.Carry(s.opponent, s.cfg)
	}
	s.cues.Cue(CuePickup)
	if err := s.out.Send(protocol.BallPickup{Type: protocol.EventBallPickup, RoomID: s.roomID, Owner: owner}); err != nil {
		return err
	}
	return s.sendBall()
}

func (s *Session) sendBall() error {
	return s.out.Send(protocol.BallUpdate{Type: protocol.EventBallUpdate, RoomID: s.roomID, BallState: s.ball.State()})
}

// tickClock runs the game clock on the authority and publishes it once per
// whole second.
func (s *Session) tickClock(dt float64) error {
	if !s.IsAuthority() || s.timeRemaining <= 0 {
		return nil
	}
	before := math.Ceil(s.timeRemaining)
	s.timeRemaining = math.Max(0, s.timeRemaining-dt)
	if math.Ceil(s.timeRemaining) == before && s.timeRemaining > 0 {
		return nil
	}
	return s.out.Send(protocol.GameStateUpdate{
		Type:          protocol.EventGameStateUpdate,
		RoomID:        s.roomID,
		TimeRemaining: s.timeRemaining,
		BallOwner:     s.ball.Owner,
	})
}

func (s *Session) handleGameplay(typ string, frame []byte) error {
	switch typ {
	case protocol.EventOpponentMove:
		var m protocol.OpponentMove
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		if s.phase == PhaseActive {
			s.opponent.Apply(m.AvatarState)
		}
	case protocol.EventBallSync:
		var m protocol.BallSync
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		if s.phase == PhaseActive {
			s.ball.ApplyRemote(m.BallState)
		}
	case protocol.EventBallPickupSync:
		var m protocol.BallPickupSync
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		if s.phase == PhaseActive {
			s.ball.Owner = perspective.Flip(m.Owner)
			s.ball.InAir = false
			s.ball.ShotFrom = nil
			if s.ball.Owner != perspective.LabelSelf {
				s.meter.Reset()
			}
			s.cues.Cue(CuePickup)
		}
	case protocol.EventScoreUpdate:
		var m protocol.ScoreUpdate
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		if s.phase == PhaseActive {
			s.score = m.Score
			s.self.Reset(s.cfg.SpawnX(s.slot), s.cfg)
			s.meter.Reset()
			s.cues.Cue(CueScore)
		}
	case protocol.EventOpponentShoot:
		var m protocol.OpponentShoot
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		s.opponentMeter = m.ShotMeter
	case protocol.EventGameStateSync:
		var m protocol.GameStateSync
		if err := s.codec.Decode(frame, &m); err != nil {
			return ErrMalformedPacket
		}
		if s.phase != PhaseActive {
			return nil
		}
		s.timeRemaining = m.TimeRemaining
		// A ball in flight is owned by the ballSync stream.
		if !s.ball.InAir {
			s.ball.Owner = perspective.Flip(m.BallOwner)
		}
	default:
		return ErrUnknownEvent
	}
	return nil
}
