package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bitoption/internal/domain"
)

// UserRepositoryImpl implements the UserRepository interface
type UserRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create creates a new user
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (
			id, username, password_hash, role, balance, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.Balance,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, role, balance, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &domain.User{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepositoryImpl) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT id, username, password_hash, role, balance, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	user := &domain.User{}
	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.Balance,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// Credit adds amount to the user's balance. The arithmetic runs inside the
// UPDATE so concurrent credits and debits never overwrite each other.
func (r *UserRepositoryImpl) Credit(ctx context.Context, userID uuid.UUID, amount float64) error {
	query := `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := r.db.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to credit user balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return nil
}

// Debit subtracts amount from the user's balance. The balance check is part
// of the UPDATE condition, so a debit can never drive the balance negative
// even under concurrent settlements on the same user.
func (r *UserRepositoryImpl) Debit(ctx context.Context, userID uuid.UUID, amount float64) error {
	query := `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
	`

	tag, err := r.db.Exec(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to debit user balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a missing user from an underfunded one
		var exists bool
		if err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", userID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return domain.ErrUserNotFound
		}
		return domain.ErrInsufficientBalance
	}

	return nil
}

// GetAll retrieves all users
func (r *UserRepositoryImpl) GetAll(ctx context.Context) ([]*domain.User, error) {
	query := `
		SELECT id, username, password_hash, role, balance, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query all users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user := &domain.User{}
		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&user.Role,
			&user.Balance,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}
