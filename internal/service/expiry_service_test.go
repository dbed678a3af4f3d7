package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bitoption/internal/domain"
	"bitoption/internal/usecase"
)

func newExpiryFixture(t *testing.T, outcome string) (*ExpiryService, *usecase.TradingService, *memUserRepo, *memTradeRepo, uuid.UUID) {
	t.Helper()
	users := newMemUserRepo()
	trades := newMemTradeRepo(users)
	trading := usecase.NewTradingService(users, trades, &stubOracle{outcome: outcome}, zap.NewNop())
	expiry := NewExpiryService(trades, trading, zap.NewNop())

	userID := uuid.New()
	require.NoError(t, users.Create(context.Background(), &domain.User{
		ID:       userID,
		Username: "expiry-user",
		Role:     domain.RoleUser,
		Balance:  1000,
	}))

	return expiry, trading, users, trades, userID
}

func TestSettleMaturedResolvesExpiredTrades(t *testing.T) {
	expiry, trading, users, _, userID := newExpiryFixture(t, domain.TradeStatusWon)

	trade, err := trading.CreateTrade(context.Background(), userID, "BTC", "UP", 100, 60)
	require.NoError(t, err)

	// Backdate expiry so the sweep sees it as matured
	setTradeExpiry(t, expiry, trade.ID, time.Now().UTC().Add(-time.Second))

	require.NoError(t, expiry.SettleMatured(context.Background()))

	settled, err := trading.GetTrade(context.Background(), trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusWon, settled.Status)
	assert.InDelta(t, 1085.0, users.balance(userID), 1e-9)
}

func TestSettleMaturedSkipsUnexpiredTrades(t *testing.T) {
	expiry, trading, users, _, userID := newExpiryFixture(t, domain.TradeStatusWon)

	trade, err := trading.CreateTrade(context.Background(), userID, "BTC", "UP", 100, 3600)
	require.NoError(t, err)

	require.NoError(t, expiry.SettleMatured(context.Background()))

	still, err := trading.GetTrade(context.Background(), trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusPending, still.Status)
	assert.InDelta(t, 900.0, users.balance(userID), 1e-9)
}

func TestSettleMaturedToleratesConcurrentResolution(t *testing.T) {
	expiry, trading, users, _, userID := newExpiryFixture(t, domain.TradeStatusWon)

	trade, err := trading.CreateTrade(context.Background(), userID, "BTC", "UP", 100, 60)
	require.NoError(t, err)
	setTradeExpiry(t, expiry, trade.ID, time.Now().UTC().Add(-time.Second))

	// Someone resolves it between the listing and the sweep's settlement
	_, _, err = trading.ResolveTrade(context.Background(), trade.ID, domain.TradeStatusLost)
	require.NoError(t, err)

	// The sweep must treat the already-resolved trade as a no-op
	require.NoError(t, expiry.SettleMatured(context.Background()))

	settled, err := trading.GetTrade(context.Background(), trade.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TradeStatusLost, settled.Status)
	assert.InDelta(t, 900.0, users.balance(userID), 1e-9)
}

func setTradeExpiry(t *testing.T, expiry *ExpiryService, tradeID uuid.UUID, at time.Time) {
	t.Helper()
	repo, ok := expiry.tradeRepo.(*memTradeRepo)
	require.True(t, ok)
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.trades[tradeID].ExpiresAt = at
}
