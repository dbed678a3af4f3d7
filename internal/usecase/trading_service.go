package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bitoption/internal/domain"
)

// TradingService is the settlement engine: it owns the trade lifecycle from
// creation (escrow debit, PENDING insert) to resolution (one-way status
// transition, payout credit).
type TradingService struct {
	userRepo  domain.UserRepository
	tradeRepo domain.TradeRepository
	oracle    domain.OutcomeOracle
	logger    *zap.Logger
}

// NewTradingService creates a new TradingService
func NewTradingService(
	userRepo domain.UserRepository,
	tradeRepo domain.TradeRepository,
	oracle domain.OutcomeOracle,
	logger *zap.Logger,
) *TradingService {
	return &TradingService{
		userRepo:  userRepo,
		tradeRepo: tradeRepo,
		oracle:    oracle,
		logger:    logger,
	}
}

// CreateTrade validates the request, debits the stake from the user's
// balance and persists the trade in PENDING status. The return percentage
// is fixed here from the timeframe and never changes afterwards.
func (s *TradingService) CreateTrade(ctx context.Context, userID uuid.UUID, coin, direction string, amount float64, timeframeSeconds int) (*domain.Trade, error) {
	coin = strings.ToUpper(strings.TrimSpace(coin))
	direction = strings.ToUpper(strings.TrimSpace(direction))

	if coin == "" {
		return nil, domain.NewValidationError("coin", "must not be empty")
	}
	if direction != domain.DirectionUp && direction != domain.DirectionDown {
		return nil, domain.NewValidationError("direction", "must be UP or DOWN")
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "must be positive")
	}
	if timeframeSeconds < domain.MinTimeframeSeconds || timeframeSeconds > domain.MaxTimeframeSeconds {
		return nil, domain.NewValidationError("timeframe_seconds", "must be between 30 and 3600")
	}

	now := time.Now().UTC()
	trade := &domain.Trade{
		ID:               uuid.New(),
		UserID:           userID,
		Coin:             coin,
		Direction:        direction,
		Amount:           amount,
		TimeframeSeconds: timeframeSeconds,
		ReturnPercent:    domain.ReturnPercent(timeframeSeconds),
		Status:           domain.TradeStatusPending,
		CreatedAt:        now,
		ExpiresAt:        now.Add(time.Duration(timeframeSeconds) * time.Second),
	}

	if err := s.tradeRepo.Create(ctx, trade); err != nil {
		return nil, err
	}

	s.logger.Info("trade created",
		zap.String("trade_id", trade.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("coin", coin),
		zap.String("direction", direction),
		zap.Float64("amount", amount),
		zap.Int("return_percent", trade.ReturnPercent),
	)

	return trade, nil
}

// ResolveTrade settles a pending trade exactly once. A non-empty
// manualResult is used verbatim; otherwise the outcome oracle decides.
// Returns the resolved trade and the payout credited (zero on LOST).
func (s *TradingService) ResolveTrade(ctx context.Context, tradeID uuid.UUID, manualResult string) (*domain.Trade, float64, error) {
	if manualResult != "" &&
		manualResult != domain.TradeStatusWon &&
		manualResult != domain.TradeStatusLost {
		return nil, 0, domain.NewValidationError("result", "must be WON or LOST")
	}

	trade, err := s.tradeRepo.GetByID(ctx, tradeID)
	if err != nil {
		return nil, 0, err
	}
	if !trade.IsPending() {
		return nil, 0, domain.ErrTradeAlreadyResolved
	}

	outcome := manualResult
	if outcome == "" {
		outcome, err = s.oracle.Outcome(ctx, trade)
		if err != nil {
			return nil, 0, err
		}
	}

	var payout float64
	if outcome == domain.TradeStatusWon {
		payout = trade.WinPayout()
	}

	// The conditional update inside Settle is the real guard; the pending
	// check above only short-circuits the obvious case.
	resolvedAt := time.Now().UTC()
	if err := s.tradeRepo.Settle(ctx, trade.ID, trade.UserID, outcome, payout, resolvedAt); err != nil {
		return nil, 0, err
	}

	trade.Status = outcome
	trade.Payout = payout
	trade.ResolvedAt = &resolvedAt

	s.logger.Info("trade resolved",
		zap.String("trade_id", trade.ID.String()),
		zap.String("user_id", trade.UserID.String()),
		zap.String("status", outcome),
		zap.Float64("payout", payout),
		zap.Bool("manual", manualResult != ""),
	)

	return trade, payout, nil
}

// GetTrade retrieves a single trade by ID
func (s *TradingService) GetTrade(ctx context.Context, tradeID uuid.UUID) (*domain.Trade, error) {
	return s.tradeRepo.GetByID(ctx, tradeID)
}

// GetUserTrades retrieves all trades for a user, newest first
func (s *TradingService) GetUserTrades(ctx context.Context, userID uuid.UUID) ([]*domain.Trade, error) {
	return s.tradeRepo.GetByUserID(ctx, userID)
}

// GetPendingTrades retrieves all unresolved trades, oldest first
func (s *TradingService) GetPendingTrades(ctx context.Context) ([]*domain.Trade, error) {
	return s.tradeRepo.GetPending(ctx)
}
