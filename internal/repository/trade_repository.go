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

const tradeColumns = `id, user_id, coin, direction, amount, timeframe_seconds,
	return_percent, status, payout, created_at, expires_at, resolved_at`

// TradeRepositoryImpl implements the TradeRepository interface
type TradeRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewTradeRepository creates a new TradeRepository
func NewTradeRepository(db *pgxpool.Pool) domain.TradeRepository {
	return &TradeRepositoryImpl{db: db}
}

// Create debits the escrowed amount and inserts the PENDING trade in one
// transaction. If the debit fails nothing is persisted.
func (r *TradeRepositoryImpl) Create(ctx context.Context, trade *domain.Trade) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	debit := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
	`
	tag, err := tx.Exec(ctx, debit, trade.Amount, trade.UserID)
	if err != nil {
		return fmt.Errorf("failed to debit escrow: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", trade.UserID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return domain.ErrUserNotFound
		}
		return domain.ErrInsufficientBalance
	}

	insert := `
		INSERT INTO trades (
			id, user_id, coin, direction, amount, timeframe_seconds,
			return_percent, status, payout, created_at, expires_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		)
	`
	_, err = tx.Exec(ctx, insert,
		trade.ID,
		trade.UserID,
		trade.Coin,
		trade.Direction,
		trade.Amount,
		trade.TimeframeSeconds,
		trade.ReturnPercent,
		trade.Status,
		trade.Payout,
		trade.CreatedAt,
		trade.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trade: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit trade creation: %w", err)
	}

	return nil
}

// GetByID retrieves a trade by ID
func (r *TradeRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trade, error) {
	query := fmt.Sprintf("SELECT %s FROM trades WHERE id = $1", tradeColumns)

	trade, err := scanTrade(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTradeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trade by ID: %w", err)
	}

	return trade, nil
}

// GetByUserID retrieves all trades for a user, newest first
func (r *TradeRepositoryImpl) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Trade, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM trades
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, tradeColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades by user ID: %w", err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// GetPending retrieves all PENDING trades, oldest first
func (r *TradeRepositoryImpl) GetPending(ctx context.Context) ([]*domain.Trade, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM trades
		WHERE status = 'PENDING'
		ORDER BY created_at ASC
	`, tradeColumns)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending trades: %w", err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// GetMatured retrieves PENDING trades whose timeframe elapsed at or before asOf
func (r *TradeRepositoryImpl) GetMatured(ctx context.Context, asOf time.Time) ([]*domain.Trade, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM trades
		WHERE status = 'PENDING' AND expires_at <= $1
		ORDER BY expires_at ASC
	`, tradeColumns)

	rows, err := r.db.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query matured trades: %w", err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// Settle transitions the trade out of PENDING and credits the payout in one
// transaction. The WHERE status = 'PENDING' condition is the double-settlement
// guard: of two concurrent settlements exactly one updates the row, the other
// sees zero rows affected and gets ErrTradeAlreadyResolved.
func (r *TradeRepositoryImpl) Settle(ctx context.Context, tradeID, userID uuid.UUID, status string, payout float64, resolvedAt time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	update := `
		UPDATE trades
		SET status = $1, payout = $2, resolved_at = $3
		WHERE id = $4 AND status = 'PENDING'
	`
	tag, err := tx.Exec(ctx, update, status, payout, resolvedAt, tradeID)
	if err != nil {
		return fmt.Errorf("failed to settle trade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM trades WHERE id = $1)", tradeID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check trade existence: %w", err)
		}
		if !exists {
			return domain.ErrTradeNotFound
		}
		return domain.ErrTradeAlreadyResolved
	}

	if payout > 0 {
		credit := `
			UPDATE users
			SET balance = balance + $1, updated_at = NOW()
			WHERE id = $2
		`
		if _, err := tx.Exec(ctx, credit, payout, userID); err != nil {
			return fmt.Errorf("failed to credit payout: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit settlement: %w", err)
	}

	return nil
}

func scanTrade(row pgx.Row) (*domain.Trade, error) {
	trade := &domain.Trade{}
	err := row.Scan(
		&trade.ID,
		&trade.UserID,
		&trade.Coin,
		&trade.Direction,
		&trade.Amount,
		&trade.TimeframeSeconds,
		&trade.ReturnPercent,
		&trade.Status,
		&trade.Payout,
		&trade.CreatedAt,
		&trade.ExpiresAt,
		&trade.ResolvedAt,
	)
	if err != nil {
		return nil, err
	}
	return trade, nil
}

func collectTrades(rows pgx.Rows) ([]*domain.Trade, error) {
	var trades []*domain.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}

	return trades, nil
}
