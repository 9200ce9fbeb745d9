package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/config"
	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/httpserver"
	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/session"
	"github.com/joshmorrison04/ai110-module1show-gameglitchinvestigator-starter/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	go sweep(ctx, mem, cfg.SweepEvery, cfg.SessionTTL)

	sm := session.NewManager(cfg.SessionSecret, cfg.CookieName, cfg.SessionTTL, cfg.Production())
	srv, err := httpserver.New(cfg, mem, sm)
	if err != nil {
		log.Fatal().Err(err).Msg("build server")
	}

	log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Environment).Bool("debug", cfg.Debug).Msg("starting guesser")
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("shut down")
}

// sweep drops sessions idle for longer than ttl until ctx ends.
func sweep(ctx context.Context, st store.Store, every, ttl time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Sweep(ctx, now.Add(-ttl)); n > 0 {
				log.Info().Int("sessions", n).Msg("expired idle sessions")
			}
		}
	}
}
