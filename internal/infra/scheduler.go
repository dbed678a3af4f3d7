package infra

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"bitoption/internal/service"
)

// Scheduler drives the expiry sweep that settles matured trades
type Scheduler struct {
	cron          *cron.Cron
	expiryService *service.ExpiryService
	logger        *zap.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(expiryService *service.ExpiryService, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		expiryService: expiryService,
		logger:        logger,
	}
}

// Start registers the sweep job and starts the cron loop. The shortest
// trade timeframe is 30 seconds, so a 10-second cadence keeps settlement
// latency well under one timeframe.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("*/10 * * * * *", func() {
		ctx := context.Background()
		if err := s.expiryService.SettleMatured(ctx); err != nil {
			s.logger.Error("expiry sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("expiry scheduler started", zap.String("cadence", "10s"))
	return nil
}

// Stop stops the cron loop and waits for a running sweep to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("expiry scheduler stopped")
}

// RunNow triggers a sweep outside the schedule
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.expiryService.SettleMatured(ctx)
}
