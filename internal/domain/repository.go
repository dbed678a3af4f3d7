package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations.
// Credit and Debit are the balance ledger: both apply their arithmetic
// atomically against the committed balance, never read-then-write.
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Credit adds amount to the user's balance
	Credit(ctx context.Context, userID uuid.UUID, amount float64) error

	// Debit subtracts amount from the user's balance; fails with
	// ErrInsufficientBalance when the balance would go negative
	Debit(ctx context.Context, userID uuid.UUID, amount float64) error

	// GetAll retrieves all users
	GetAll(ctx context.Context) ([]*User, error)
}

// TradeRepository defines the interface for trade data operations
type TradeRepository interface {
	// Create persists a new PENDING trade and debits the escrowed amount
	// from the user's balance in the same transaction
	Create(ctx context.Context, trade *Trade) error

	// GetByID retrieves a trade by ID
	GetByID(ctx context.Context, id uuid.UUID) (*Trade, error)

	// GetByUserID retrieves all trades for a user, newest first
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*Trade, error)

	// GetPending retrieves all PENDING trades, oldest first
	GetPending(ctx context.Context) ([]*Trade, error)

	// GetMatured retrieves PENDING trades whose timeframe elapsed at or
	// before asOf
	GetMatured(ctx context.Context, asOf time.Time) ([]*Trade, error)

	// Settle transitions the trade from PENDING to status and, when payout
	// is positive, credits it to the owner in the same transaction. The
	// status update is conditional on the current status being PENDING;
	// a concurrent settlement loser gets ErrTradeAlreadyResolved.
	Settle(ctx context.Context, tradeID, userID uuid.UUID, status string, payout float64, resolvedAt time.Time) error
}

// TransferRepository defines the interface for deposit/withdrawal requests
type TransferRepository interface {
	// Create persists a new PENDING transfer request
	Create(ctx context.Context, req *TransferRequest) error

	// GetByID retrieves a transfer request by ID
	GetByID(ctx context.Context, id uuid.UUID) (*TransferRequest, error)

	// GetByUserID retrieves all transfer requests for a user, newest first
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*TransferRequest, error)

	// GetPending retrieves all PENDING transfer requests, oldest first
	GetPending(ctx context.Context) ([]*TransferRequest, error)

	// Review transitions the request from PENDING to status and applies the
	// balance effect (credit for an approved deposit, debit for an approved
	// withdrawal) in the same transaction. A failed withdrawal debit leaves
	// the request PENDING.
	Review(ctx context.Context, requestID uuid.UUID, status string, reviewedAt time.Time) error
}
