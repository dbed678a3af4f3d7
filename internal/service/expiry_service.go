package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bitoption/internal/domain"
	"bitoption/internal/usecase"
)

// ExpiryService settles pending trades whose timeframe has elapsed. It runs
// from the cron scheduler and goes through the same settlement path as a
// manual resolution, so racing with an admin override is safe: one side
// loses the conditional update and is skipped here.
type ExpiryService struct {
	tradeRepo      domain.TradeRepository
	tradingService *usecase.TradingService
	logger         *zap.Logger
}

// NewExpiryService creates a new ExpiryService
func NewExpiryService(
	tradeRepo domain.TradeRepository,
	tradingService *usecase.TradingService,
	logger *zap.Logger,
) *ExpiryService {
	return &ExpiryService{
		tradeRepo:      tradeRepo,
		tradingService: tradingService,
		logger:         logger,
	}
}

// SettleMatured resolves every pending trade that matured at or before now.
// Individual failures are logged and skipped so one bad trade cannot stall
// the sweep.
func (s *ExpiryService) SettleMatured(ctx context.Context) error {
	trades, err := s.tradeRepo.GetMatured(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to list matured trades: %w", err)
	}

	if len(trades) == 0 {
		return nil
	}

	s.logger.Info("settling matured trades", zap.Int("count", len(trades)))

	for _, trade := range trades {
		_, payout, err := s.tradingService.ResolveTrade(ctx, trade.ID, "")
		if errors.Is(err, domain.ErrTradeAlreadyResolved) {
			// Lost the race to a concurrent resolution
			continue
		}
		if err != nil {
			s.logger.Error("failed to settle matured trade",
				zap.String("trade_id", trade.ID.String()),
				zap.Error(err),
			)
			continue
		}

		s.logger.Info("matured trade settled",
			zap.String("trade_id", trade.ID.String()),
			zap.Float64("payout", payout),
		)
	}

	return nil
}
