package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"street-hoops/internal/config"
	"street-hoops/internal/logging"
	"street-hoops/internal/netplay"
	"street-hoops/internal/protocol"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var errMatchOver = errors.New("match_over")

func main() {
	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)
	cfg, err := config.LoadBot()
	if err != nil {
		log.Fatal().Err(err).Msg("load bot config failed")
	}
	codec, err := protocol.CodecByName(cfg.Codec)
	if err != nil {
		log.Fatal().Err(err).Str("codec", cfg.Codec).Msg("unknown codec")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for i := 1; cfg.Matches <= 0 || i <= cfg.Matches; i++ {
		if err := runMatch(ctx, cfg, codec); err != nil {
			log.Error().Err(err).Int("match", i).Msg("match failed")
			os.Exit(1)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// runMatch plays one match on a fresh connection. Frames are read on their
// own goroutine and handed to the single loop that owns the session.
func runMatch(ctx context.Context, cfg config.BotConfig, codec protocol.Codec) error {
	conn, err := netplay.Dial(ctx, cfg.WSURL, codec)
	if err != nil {
		return err
	}
	b := newBot(conn, codec, cfg)

	frames := make(chan []byte, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(frames)
		for {
			frame, err := conn.ReadFrame()
			if err != nil {
				if gctx.Err() != nil {
					return nil
				}
				return err
			}
			select {
			case frames <- frame:
			case <-gctx.Done():
				return nil
			}
		}
	})
	g.Go(func() error {
		defer conn.Close()
		err := b.loop(gctx, frames)
		if errors.Is(err, errMatchOver) {
			return nil
		}
		return err
	})
	return g.Wait()
}
