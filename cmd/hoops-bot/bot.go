package main

import (
	"context"
	"math/rand"
	"time"

	"street-hoops/internal/config"
	"street-hoops/internal/netplay"
	"street-hoops/internal/protocol"

	"github.com/rs/zerolog/log"
)

type bot struct {
	sess      *netplay.Session
	input     netplay.InputSource
	render    netplay.Renderer
	autoReady bool
	tick      time.Duration

	searching bool
	readySent bool
}

func newBot(out netplay.Sender, codec protocol.Codec, cfg config.BotConfig) *bot {
	hz := cfg.TickHz
	if hz <= 0 {
		hz = 60
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &bot{
		sess:      netplay.NewSession(out, codec, netplay.WithCues(logCues{}), netplay.WithRand(rng)),
		input:     newScriptedInput(rng),
		render:    &statusLine{every: time.Second},
		autoReady: cfg.AutoReady,
		tick:      time.Second / time.Duration(hz),
	}
}

func (b *bot) loop(ctx context.Context, frames <-chan []byte) error {
	ticker := time.NewTicker(b.tick)
	defer ticker.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case frame, ok := <-frames:
			if !ok {
				return errMatchOver
			}
			if err := b.sess.Handle(frame); err != nil {
				log.Debug().Err(err).Msg("frame_rejected")
			}
			if err := b.react(); err != nil {
				return err
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if err := b.sess.Step(dt, b.input.Intents(b.sess.Frame())); err != nil {
				return err
			}
			b.render.Render(b.sess.Frame())
		}
	}
}

// react drives the session through matchmaking and the lobby.
func (b *bot) react() error {
	s := b.sess
	switch {
	case s.Phase() == netplay.PhaseOver:
		log.Info().Int("winner", int(s.Winner())).Str("status", s.Frame().Status).Msg("match_over")
		return errMatchOver
	case s.Exit() == netplay.ExitToMenu:
		log.Info().Str("status", s.Frame().Status).Msg("returned_to_menu")
		return errMatchOver
	case s.Exit() == netplay.ExitToMatchmaking && s.Phase() == netplay.PhaseIdle:
		log.Info().Str("status", s.Frame().Status).Msg("requeue")
		b.readySent = false
		return s.FindMatch()
	case s.ConnID() != "" && !b.searching:
		b.searching = true
		return s.FindMatch()
	case s.Phase() == netplay.PhaseLobby && b.autoReady && !b.readySent:
		b.readySent = true
		log.Info().Str("room_id", s.RoomID()).Int("slot", int(s.Slot())).Msg("ready")
		return s.SetReady(true)
	}
	return nil
}

type logCues struct{}

func (logCues) Cue(c netplay.Cue) {
	log.Debug().Str("cue", string(c)).Msg("cue")
}

// statusLine logs the scoreboard at most once per interval.
type statusLine struct {
	every time.Duration
	last  time.Time
}

func (s *statusLine) Render(f netplay.Frame) {
	if f.Phase != netplay.PhaseActive || time.Since(s.last) < s.every {
		return
	}
	s.last = time.Now()
	log.Info().
		Int("self", f.SelfScore).
		Int("opponent", f.OpponentScore).
		Float64("time_remaining", f.TimeRemaining).
		Str("ball_owner", string(f.Ball.Owner)).
		Bool("authority", f.Authority).
		Msg("status")
}
