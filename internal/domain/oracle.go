package domain

import "context"

// OutcomeOracle decides the outcome of a pending trade when no manual
// result is supplied. The default implementation is an unweighted coin
// flip; a price-feed comparison can be swapped in without touching the
// settlement state machine.
type OutcomeOracle interface {
	// Outcome returns TradeStatusWon or TradeStatusLost for the trade
	Outcome(ctx context.Context, trade *Trade) (string, error)
}
