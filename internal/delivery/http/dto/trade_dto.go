package dto

import (
	"time"

	"bitoption/internal/domain"
)

// CreateTradeRequest represents the trade creation payload
type CreateTradeRequest struct {
	Coin             string  `json:"coin"`
	Direction        string  `json:"direction"`
	Amount           float64 `json:"amount"`
	TimeframeSeconds int     `json:"timeframe_seconds"`
}

// ResolveTradeRequest represents the admin manual-resolution payload.
// An empty result lets the outcome oracle decide.
type ResolveTradeRequest struct {
	Result string `json:"result"`
}

// TradeOutput represents trade data in API responses
type TradeOutput struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id"`
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

// NewTradeOutput converts a domain trade to its API representation
func NewTradeOutput(trade *domain.Trade) TradeOutput {
	return TradeOutput{
		ID:               trade.ID.String(),
		UserID:           trade.UserID.String(),
		Coin:             trade.Coin,
		Direction:        trade.Direction,
		Amount:           trade.Amount,
		TimeframeSeconds: trade.TimeframeSeconds,
		ReturnPercent:    trade.ReturnPercent,
		Status:           trade.Status,
		Payout:           trade.Payout,
		CreatedAt:        trade.CreatedAt,
		ExpiresAt:        trade.ExpiresAt,
		ResolvedAt:       trade.ResolvedAt,
	}
}

// NewTradeOutputs converts a slice of domain trades
func NewTradeOutputs(trades []*domain.Trade) []TradeOutput {
	outputs := make([]TradeOutput, 0, len(trades))
	for _, trade := range trades {
		outputs = append(outputs, NewTradeOutput(trade))
	}
	return outputs
}

// ResolutionOutput pairs a resolved trade with its payout
type ResolutionOutput struct {
	Trade  TradeOutput `json:"trade"`
	Payout float64     `json:"payout"`
}
