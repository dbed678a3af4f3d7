package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bitoption/internal/domain"
)

const transferColumns = `id, user_id, kind, amount, address, status, created_at, reviewed_at`

// TransferRepositoryImpl implements the TransferRepository interface
type TransferRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTransferRepository creates a new TransferRepository
func NewTransferRepository(db *pgxpool.Pool) domain.TransferRepository {
	return &TransferRepositoryImpl{db: db}
}

// Create persists a new PENDING transfer request
func (r *TransferRepositoryImpl) Create(ctx context.Context, req *domain.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests (
			id, user_id, kind, amount, address, status, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := r.db.Exec(ctx, query,
		req.ID,
		req.UserID,
		req.Kind,
		req.Amount,
		req.Address,
		req.Status,
		req.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create transfer request: %w", err)
	}

	return nil
}

// GetByID retrieves a transfer request by ID
func (r *TransferRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.TransferRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM transfer_requests WHERE id = $1", transferColumns)

	req, err := scanTransfer(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer request by ID: %w", err)
	}

	return req, nil
}

// GetByUserID retrieves all transfer requests for a user, newest first
func (r *TransferRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.TransferRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transfer_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, transferColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer requests by user ID: %w", err)
	}
	defer rows.Close()

	return collectTransfers(rows)
}

// GetPending retrieves all PENDING transfer requests, oldest first
func (r *TransferRepositoryImpl) GetPending(ctx context.Context) ([]*domain.TransferRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM transfer_requests
		WHERE status = 'PENDING'
		ORDER BY created_at ASC
	`, transferColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending transfer requests: %w", err)
	}
	defer rows.Close()

	return collectTransfers(rows)
}

// Review transitions the request out of PENDING and applies the balance
// effect in one transaction. The request row is locked first so the status
// check and the ledger update cannot interleave with a concurrent review.
func (r *TransferRepositoryImpl) Review(ctx context.Context, requestID uuid.UUID, status string, reviewedAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		userID        uuid.UUID
		kind          string
		amount        float64
		currentStatus string
	)
	err = tx.QueryRow(ctx,
		"SELECT user_id, kind, amount, status FROM transfer_requests WHERE id = $1 FOR UPDATE",
		requestID).Scan(&userID, &kind, &amount, &currentStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrTransferNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock transfer request: %w", err)
	}

	if currentStatus != domain.TransferStatusPending {
		return domain.ErrTransferAlreadyReviewed
	}

	if status == domain.TransferStatusApproved {
		switch kind {
		case domain.TransferDeposit:
			credit := `
				UPDATE users
				SET balance = balance + $1, updated_at = NOW()
				WHERE id = $2
			`
			if _, err := tx.Exec(ctx, credit, amount, userID); err != nil {
				return fmt.Errorf("failed to credit deposit: %w", err)
			}
		case domain.TransferWithdrawal:
			debit := `
				UPDATE users
				SET balance = balance - $1, updated_at = NOW()
				WHERE id = $2 AND balance >= $1
			`
			tag, err := tx.Exec(ctx, debit, amount, userID)
			if err != nil {
				return fmt.Errorf("failed to debit withdrawal: %w", err)
			}
			if tag.RowsAffected() == 0 {
				// Rollback leaves the request PENDING for a later retry
				return domain.ErrInsufficientBalance
			}
		default:
			return fmt.Errorf("unknown transfer kind %q", kind)
		}
	}

	update := `
		UPDATE transfer_requests
		SET status = $1, reviewed_at = $2
		WHERE id = $3 AND status = 'PENDING'
	`
	tag, err := tx.Exec(ctx, update, status, reviewedAt, requestID)
	if err != nil {
		return fmt.Errorf("failed to update transfer request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTransferAlreadyReviewed
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transfer review: %w", err)
	}

	return nil
}

func scanTransfer(row pgx.Row) (*domain.TransferRequest, error) {
	req := &domain.TransferRequest{}
	err := row.Scan(
		&req.ID,
		&req.UserID,
		&req.Kind,
		&req.Amount,
		&req.Address,
		&req.Status,
		&req.CreatedAt,
		&req.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func collectTransfers(rows pgx.Rows) ([]*domain.TransferRequest, error) {
	var reqs []*domain.TransferRequest
	for rows.Next() {
		req, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer request: %w", err)
		}
		reqs = append(reqs, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfer requests: %w", err)
	}

	return reqs, nil
}
