package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bitoption/internal/delivery/http/dto"
	"bitoption/internal/middleware"
	"bitoption/internal/usecase"
)

// TradeHandler handles trade-related requests
type TradeHandler struct {
	tradingService *usecase.TradingService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradingService *usecase.TradingService) *TradeHandler {
	return &TradeHandler{tradingService: tradingService}
}

// CreateTrade opens a new binary trade for the authenticated user
// POST /api/user/trades
func (h *TradeHandler) CreateTrade(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.CreateTradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trade, err := h.tradingService.CreateTrade(ctx, userID, req.Coin, req.Direction, req.Amount, req.TimeframeSeconds)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, dto.NewTradeOutput(trade))
}

// GetTrades lists the authenticated user's trades, newest first
// GET /api/user/trades
func (h *TradeHandler) GetTrades(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trades, err := h.tradingService.GetUserTrades(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.NewTradeOutputs(trades))
}

// GetTrade returns a single trade owned by the authenticated user
// GET /api/user/trades/:id
func (h *TradeHandler) GetTrade(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid trade id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trade, err := h.tradingService.GetTrade(ctx, tradeID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	// Trades are owned exclusively by their creator
	if trade.UserID != userID {
		return NotFoundResponse(c, "trade not found")
	}

	return SuccessResponse(c, dto.NewTradeOutput(trade))
}
