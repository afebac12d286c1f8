package main

import (
	"context"
	"time"

	"github.com/klassico/storefront/internal/http/ban"
	rl "github.com/klassico/storefront/internal/http/rate_limiter"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const visitorIdleTimeout = 5 * time.Minute

func startJobs(log *zap.Logger, limiter *rl.Limiter, bans *ban.Store) *cron.Cron {
	sched := cron.New()

	_, err := sched.AddFunc("@every 1m", func() {
		if removed := limiter.Cleanup(visitorIdleTimeout); removed > 0 {
			log.Debug("Dropped idle rate limit visitors", zap.Int("removed", removed))
		}
	})
	if err != nil {
		log.Error("init job error", zap.Error(err))
	}

	_, err = sched.AddFunc("59 23 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		bans.LogDailySummary(ctx, log)
	})
	if err != nil {
		log.Error("init job error", zap.Error(err))
	}

	sched.Start()
	return sched
}
