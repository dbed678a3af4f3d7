package dto

import (
	"time"

	"bitoption/internal/domain"
)

// TransferRequestInput represents a deposit or withdrawal submission
type TransferRequestInput struct {
	Amount  float64 `json:"amount"`
	Address string  `json:"address"`
}

// TransferOutput represents a transfer request in API responses
type TransferOutput struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Kind       string     `json:"kind"`
	Amount     float64    `json:"amount"`
	Address    string     `json:"address,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

// NewTransferOutput converts a domain transfer request to its API representation
func NewTransferOutput(req *domain.TransferRequest) TransferOutput {
	return TransferOutput{
		ID:         req.ID.String(),
		UserID:     req.UserID.String(),
		Kind:       req.Kind,
		Amount:     req.Amount,
		Address:    req.Address,
		Status:     req.Status,
		CreatedAt:  req.CreatedAt,
		ReviewedAt: req.ReviewedAt,
	}
}

// NewTransferOutputs converts a slice of domain transfer requests
func NewTransferOutputs(reqs []*domain.TransferRequest) []TransferOutput {
	outputs := make([]TransferOutput, 0, len(reqs))
	for _, req := range reqs {
		outputs = append(outputs, NewTransferOutput(req))
	}
	return outputs
}
