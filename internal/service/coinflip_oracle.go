package service

import (
	"context"
	"math/rand/v2"

	"bitoption/internal/domain"
)

// CoinFlipOracle resolves trades with an unweighted 50/50 coin flip. It is
// the stand-in policy behind domain.OutcomeOracle; a price-feed comparison
// against the trade's direction would slot in here.
type CoinFlipOracle struct{}

// NewCoinFlipOracle creates a new CoinFlipOracle
func NewCoinFlipOracle() *CoinFlipOracle {
	return &CoinFlipOracle{}
}

// Outcome returns WON or LOST with equal probability
func (o *CoinFlipOracle) Outcome(_ context.Context, _ *domain.Trade) (string, error) {
	if rand.IntN(2) == 0 {
		return domain.TradeStatusWon, nil
	}
	return domain.TradeStatusLost, nil
}
