package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransferRequest represents a deposit or withdrawal awaiting admin review
type TransferRequest struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Kind       string     `json:"kind"`
	Amount     float64    `json:"amount"`
	Address    string     `json:"address,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`
}

// TransferKind constants
const (
	TransferDeposit    = "DEPOSIT"
	TransferWithdrawal = "WITHDRAWAL"
)

// TransferStatus constants
const (
	TransferStatusPending  = "PENDING"
	TransferStatusApproved = "APPROVED"
	TransferStatusRejected = "REJECTED"
)
