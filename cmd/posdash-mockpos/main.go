// Command posdash-mockpos serves the fixture POS aggregation backend for local runs
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"posdash/internal/adapters/mockpos"
	"posdash/internal/platform/config"
	"posdash/internal/platform/logger"
	phttp "posdash/internal/platform/net/http"
	"posdash/internal/platform/net/middleware"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.New().Prefix("POSDASH_MOCKPOS_")
	l := logger.Named("mockpos")

	// fixtures sit around 2024-03-21; pinning keeps "today" meaningful
	now := time.Now
	if cfg.MayBool("PIN_NOW", true) {
		pinned := mockpos.FixtureNow
		if v := cfg.MayString("NOW", ""); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				l.Panic().Err(err).Str("now", v).Msg("bad POSDASH_MOCKPOS_NOW")
			}
			pinned = t
		}
		now = func() time.Time { return pinned }
	}

	srv := phttp.NewServerAddr(cfg.MayString("PORT", ":3001"))
	r := srv.Router()
	r.Use(middleware.RequestID(), middleware.RealIP(), middleware.RecoverJSON)
	r.Route("/api", func(api phttp.Router) {
		mockpos.Register(api, mockpos.New(mockpos.Fixtures(), now))
	})

	l.Info().Time("now", now()).Msg("mock pos backend starting")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
