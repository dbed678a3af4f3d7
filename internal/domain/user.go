package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account holding a tradable balance
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose password hash in JSON
	Role         string    `json:"role"`
	Balance      float64   `json:"balance"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole constants
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)
