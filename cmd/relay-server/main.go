package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"street-hoops/internal/config"
	"street-hoops/internal/logging"
	"street-hoops/internal/relay"
	"street-hoops/internal/store"
	httptransport "street-hoops/internal/transport/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	app, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(app.Log)
	cfg := app.Server

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := relay.NewRegistry(relay.Options{
		WinScore:    cfg.WinScore,
		GameSeconds: float64(cfg.GameSeconds),
		QueueTTL:    cfg.QueueTTL,
		LobbyTTL:    cfg.LobbyTTL,
	})

	var st *store.Store
	var history *relay.HistoryRecorder
	if cfg.HistoryEnabled() {
		st, err = store.New(cfg.PostgresDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("store init failed")
		}
		defer st.Close()
		if err := st.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("db ping failed")
		}
		history = relay.NewHistoryRecorder(st)
		history.Start(ctx)
		reg.SetMatchObserver(history)
	} else {
		log.Warn().Msg("POSTGRES_DSN not set; match history disabled")
	}

	reg.StartJanitor(ctx, cfg.JanitorInterval)
	ws := relay.NewServer(reg, cfg.WSSendBuffer, cfg.WSReadLimit)
	r := httptransport.NewRouter(cfg, reg, ws, st)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Int("win_score", cfg.WinScore).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
	if history != nil {
		<-history.Done()
	}
	log.Info().Msg("server stopped")
}
