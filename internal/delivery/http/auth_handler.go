package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"bitoption/internal/delivery/http/dto"
	"bitoption/internal/domain"
	"bitoption/internal/middleware"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userRepo        domain.UserRepository
	startingBalance float64
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo domain.UserRepository, startingBalance float64) *AuthHandler {
	return &AuthHandler{
		userRepo:        userRepo,
		startingBalance: startingBalance,
	}
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	if req.Username == "" || req.Password == "" {
		return BadRequestResponse(c, "Username and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token", err)
	}

	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	}
	c.SetCookie(cookie)

	return SuccessResponse(c, dto.LoginResponse{
		Token: token,
		User: &dto.UserOutput{
			ID:       user.ID.String(),
			Username: user.Username,
			Role:     user.Role,
			Balance:  user.Balance,
		},
	})
}

// Logout handles user logout
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1, // Delete cookie
	}
	c.SetCookie(cookie)

	return SuccessResponse(c, map[string]string{"message": "Logged out"})
}

// Register handles user registration
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return BadRequestResponse(c, "Username and password are required")
	}
	if len(req.Password) < 6 {
		return BadRequestResponse(c, "Password must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to hash password", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
		Balance:      h.startingBalance,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		return InternalServerErrorResponse(c, "Failed to create user", err)
	}

	return CreatedResponse(c, dto.UserOutput{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
		Balance:  user.Balance,
	})
}

// GetMe returns current user details
// GET /api/user/me
func (h *AuthHandler) GetMe(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.UserOutput{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
		Balance:  user.Balance,
	})
}
