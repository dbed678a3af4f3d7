package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bitoption/internal/domain"
)

// WalletService handles the deposit/withdrawal request workflow: users
// submit requests, an admin approves or rejects them. Balance effects
// happen only at approval, through the same atomic ledger primitives the
// settlement path uses.
type WalletService struct {
	userRepo     domain.UserRepository
	transferRepo domain.TransferRepository
	logger       *zap.Logger
}

// NewWalletService creates a new WalletService
func NewWalletService(
	userRepo domain.UserRepository,
	transferRepo domain.TransferRepository,
	logger *zap.Logger,
) *WalletService {
	return &WalletService{
		userRepo:     userRepo,
		transferRepo: transferRepo,
		logger:       logger,
	}
}

// SubmitDeposit creates a PENDING deposit request
func (s *WalletService) SubmitDeposit(ctx context.Context, userID uuid.UUID, amount float64, address string) (*domain.TransferRequest, error) {
	return s.submit(ctx, userID, domain.TransferDeposit, amount, address)
}

// SubmitWithdrawal creates a PENDING withdrawal request. The balance is not
// checked here; the debit happens at approval against the balance committed
// at that moment.
func (s *WalletService) SubmitWithdrawal(ctx context.Context, userID uuid.UUID, amount float64, address string) (*domain.TransferRequest, error) {
	if strings.TrimSpace(address) == "" {
		return nil, domain.NewValidationError("address", "must not be empty")
	}
	return s.submit(ctx, userID, domain.TransferWithdrawal, amount, address)
}

func (s *WalletService) submit(ctx context.Context, userID uuid.UUID, kind string, amount float64, address string) (*domain.TransferRequest, error) {
	if amount <= 0 {
		return nil, domain.NewValidationError("amount", "must be positive")
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	req := &domain.TransferRequest{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Amount:    amount,
		Address:   strings.TrimSpace(address),
		Status:    domain.TransferStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.transferRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("transfer request submitted",
		zap.String("request_id", req.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("kind", kind),
		zap.Float64("amount", amount),
	)

	return req, nil
}

// Approve settles a pending request, applying its balance effect. An
// underfunded withdrawal fails with ErrInsufficientBalance and the request
// stays PENDING.
func (s *WalletService) Approve(ctx context.Context, requestID uuid.UUID) (*domain.TransferRequest, error) {
	return s.review(ctx, requestID, domain.TransferStatusApproved)
}

// Reject settles a pending request with no balance effect
func (s *WalletService) Reject(ctx context.Context, requestID uuid.UUID) (*domain.TransferRequest, error) {
	return s.review(ctx, requestID, domain.TransferStatusRejected)
}

func (s *WalletService) review(ctx context.Context, requestID uuid.UUID, status string) (*domain.TransferRequest, error) {
	reviewedAt := time.Now().UTC()
	if err := s.transferRepo.Review(ctx, requestID, status, reviewedAt); err != nil {
		return nil, err
	}

	req, err := s.transferRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("transfer request reviewed",
		zap.String("request_id", requestID.String()),
		zap.String("status", status),
	)

	return req, nil
}

// GetUserTransfers retrieves all transfer requests for a user, newest first
func (s *WalletService) GetUserTransfers(ctx context.Context, userID uuid.UUID) ([]*domain.TransferRequest, error) {
	return s.transferRepo.GetByUserID(ctx, userID)
}

// GetPendingTransfers retrieves all requests awaiting review, oldest first
func (s *WalletService) GetPendingTransfers(ctx context.Context) ([]*domain.TransferRequest, error) {
	return s.transferRepo.GetPending(ctx)
}
