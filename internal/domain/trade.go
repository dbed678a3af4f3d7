package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trade represents a binary UP/DOWN wager on a coin over a fixed timeframe
type Trade struct {
	ID               uuid.UUID  `json:"id"`
	UserID           uuid.UUID  `json:"user_id"`
	Coin             string     `json:"coin"`
	Direction        string     `json:"direction"`
	Amount           float64    `json:"amount"`
	TimeframeSeconds int        `json:"timeframe_seconds"`
	ReturnPercent    int        `json:"return_percent"`
	Status           string     `json:"status"`
	Payout           float64    `json:"payout"`
	CreatedAt        time.Time  `json:"created_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	ResolvedAt       *time.Time `json:"resolved_at,omitempty"`
}

// TradeDirection constants
const (
	DirectionUp   = "UP"
	DirectionDown = "DOWN"
)

// TradeStatus constants
const (
	TradeStatusPending = "PENDING"
	TradeStatusWon     = "WON"
	TradeStatusLost    = "LOST"
)

// Timeframe bounds accepted at trade creation
const (
	MinTimeframeSeconds = 30
	MaxTimeframeSeconds = 3600
)

// ReturnPercent maps a timeframe to its fixed return percentage.
// Shorter timeframes pay more; the mapping is locked in at creation
// and never changes for the life of the trade.
func ReturnPercent(timeframeSeconds int) int {
	switch {
	case timeframeSeconds <= 60:
		return 85
	case timeframeSeconds <= 300:
		return 80
	case timeframeSeconds <= 900:
		return 75
	case timeframeSeconds <= 1800:
		return 70
	default:
		return 65
	}
}

// WinPayout returns the amount credited back if the trade resolves WON:
// the escrowed principal plus the fixed return percentage.
func (t *Trade) WinPayout() float64 {
	return t.Amount * (1 + float64(t.ReturnPercent)/100)
}

// IsPending reports whether the trade can still be resolved.
func (t *Trade) IsPending() bool {
	return t.Status == TradeStatusPending
}

// Matured reports whether the trade's timeframe has elapsed at the given time.
func (t *Trade) Matured(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
