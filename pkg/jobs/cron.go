package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jordanlanch/listingpro/pkg/analytics"
	"github.com/jordanlanch/listingpro/pkg/listings"
)

// CronManager manages scheduled jobs
type CronManager struct {
	cron     *cron.Cron
	listings *listings.Service
	stats    *analytics.Service
	logger   *log.Logger
}

// NewCronManager creates a new cron manager. stats may be nil.
func NewCronManager(listingService *listings.Service, stats *analytics.Service, logger *log.Logger) *CronManager {
	if logger == nil {
		logger = log.Default()
	}
	return &CronManager{
		cron:     cron.New(),
		listings: listingService,
		stats:    stats,
		logger:   logger,
	}
}

// SetupJobs configures all scheduled jobs
func (cm *CronManager) SetupJobs() error {
	cm.logger.Println("Setting up cron jobs...")

	// Hourly: rewrite every overlay table from session state, healing any
	// table a failed write left stale.
	_, err := cm.cron.AddFunc("@hourly", func() {
		cm.logger.Println("🕐 Running overlay resync job...")

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		cm.listings.ResyncOverlays(ctx)
		cm.logger.Println("✅ Overlay resync completed")
	})
	if err != nil {
		return err
	}

	// Every 15 minutes: keep the dashboard stats cache warm.
	if cm.stats != nil {
		_, err = cm.cron.AddFunc("*/15 * * * *", func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			cm.stats.Invalidate(ctx)
			cm.stats.Stats(ctx)
			cm.logger.Println("✅ Stats cache warmed")
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// Start begins running scheduled jobs
func (cm *CronManager) Start() {
	cm.cron.Start()
	cm.logger.Println("✅ Cron jobs started")
}

// Stop gracefully stops all scheduled jobs
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
	cm.logger.Println("🛑 Cron jobs stopped")
}
