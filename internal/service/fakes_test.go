package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bitoption/internal/domain"
)

// In-memory repositories mirroring the conditional-update semantics of the
// SQL implementations, shared by the service tests.

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Credit(_ context.Context, userID uuid.UUID, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	user.Balance += amount
	return nil
}

func (r *memUserRepo) Debit(_ context.Context, userID uuid.UUID, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	if user.Balance < amount {
		return domain.ErrInsufficientBalance
	}
	user.Balance -= amount
	return nil
}

func (r *memUserRepo) GetAll(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []*domain.User
	for _, user := range r.users {
		cp := *user
		users = append(users, &cp)
	}
	return users, nil
}

func (r *memUserRepo) balance(id uuid.UUID) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id].Balance
}

type memTradeRepo struct {
	mu     sync.Mutex
	trades map[uuid.UUID]*domain.Trade
	users  *memUserRepo
}

func newMemTradeRepo(users *memUserRepo) *memTradeRepo {
	return &memTradeRepo{trades: make(map[uuid.UUID]*domain.Trade), users: users}
}

func (r *memTradeRepo) Create(ctx context.Context, trade *domain.Trade) error {
	if err := r.users.Debit(ctx, trade.UserID, trade.Amount); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *trade
	r.trades[trade.ID] = &cp
	return nil
}

func (r *memTradeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	trade, ok := r.trades[id]
	if !ok {
		return nil, domain.ErrTradeNotFound
	}
	cp := *trade
	return &cp, nil
}

func (r *memTradeRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]*domain.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var trades []*domain.Trade
	for _, trade := range r.trades {
		if trade.UserID == userID {
			cp := *trade
			trades = append(trades, &cp)
		}
	}
	return trades, nil
}

func (r *memTradeRepo) GetPending(_ context.Context) ([]*domain.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var trades []*domain.Trade
	for _, trade := range r.trades {
		if trade.Status == domain.TradeStatusPending {
			cp := *trade
			trades = append(trades, &cp)
		}
	}
	return trades, nil
}

func (r *memTradeRepo) GetMatured(_ context.Context, asOf time.Time) ([]*domain.Trade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var trades []*domain.Trade
	for _, trade := range r.trades {
		if trade.Status == domain.TradeStatusPending && trade.Matured(asOf) {
			cp := *trade
			trades = append(trades, &cp)
		}
	}
	return trades, nil
}

func (r *memTradeRepo) Settle(ctx context.Context, tradeID, userID uuid.UUID, status string, payout float64, resolvedAt time.Time) error {
	r.mu.Lock()
	trade, ok := r.trades[tradeID]
	if !ok {
		r.mu.Unlock()
		return domain.ErrTradeNotFound
	}
	if trade.Status != domain.TradeStatusPending {
		r.mu.Unlock()
		return domain.ErrTradeAlreadyResolved
	}
	trade.Status = status
	trade.Payout = payout
	trade.ResolvedAt = &resolvedAt
	r.mu.Unlock()

	if payout > 0 {
		return r.users.Credit(ctx, userID, payout)
	}
	return nil
}

type memTransferRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*domain.TransferRequest
	users    *memUserRepo
}

func newMemTransferRepo(users *memUserRepo) *memTransferRepo {
	return &memTransferRepo{requests: make(map[uuid.UUID]*domain.TransferRequest), users: users}
}

func (r *memTransferRepo) Create(_ context.Context, req *domain.TransferRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *memTransferRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.TransferRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *memTransferRepo) GetByUserID(_ context.Context, userID uuid.UUID) ([]*domain.TransferRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reqs []*domain.TransferRequest
	for _, req := range r.requests {
		if req.UserID == userID {
			cp := *req
			reqs = append(reqs, &cp)
		}
	}
	return reqs, nil
}

func (r *memTransferRepo) GetPending(_ context.Context) ([]*domain.TransferRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var reqs []*domain.TransferRequest
	for _, req := range r.requests {
		if req.Status == domain.TransferStatusPending {
			cp := *req
			reqs = append(reqs, &cp)
		}
	}
	return reqs, nil
}

func (r *memTransferRepo) Review(ctx context.Context, requestID uuid.UUID, status string, reviewedAt time.Time) error {
	r.mu.Lock()
	req, ok := r.requests[requestID]
	if !ok {
		r.mu.Unlock()
		return domain.ErrTransferNotFound
	}
	if req.Status != domain.TransferStatusPending {
		r.mu.Unlock()
		return domain.ErrTransferAlreadyReviewed
	}
	userID, kind, amount := req.UserID, req.Kind, req.Amount
	r.mu.Unlock()

	if status == domain.TransferStatusApproved {
		switch kind {
		case domain.TransferDeposit:
			if err := r.users.Credit(ctx, userID, amount); err != nil {
				return err
			}
		case domain.TransferWithdrawal:
			if err := r.users.Debit(ctx, userID, amount); err != nil {
				return err
			}
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	req.Status = status
	req.ReviewedAt = &reviewedAt
	return nil
}

type stubOracle struct {
	outcome string
}

func (o *stubOracle) Outcome(_ context.Context, _ *domain.Trade) (string, error) {
	return o.outcome, nil
}
