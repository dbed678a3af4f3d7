package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bitoption/internal/delivery/http/dto"
	"bitoption/internal/domain"
	"bitoption/internal/service"
	"bitoption/internal/usecase"
)

// AdminHandler handles the review panel: manual trade resolution and
// transfer approval. All routes are behind the admin middleware.
type AdminHandler struct {
	tradingService *usecase.TradingService
	walletService  *service.WalletService
	userRepo       domain.UserRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	tradingService *usecase.TradingService,
	walletService *service.WalletService,
	userRepo domain.UserRepository,
) *AdminHandler {
	return &AdminHandler{
		tradingService: tradingService,
		walletService:  walletService,
		userRepo:       userRepo,
	}
}

// GetPendingTrades lists all unresolved trades, oldest first
// GET /api/admin/trades/pending
func (h *AdminHandler) GetPendingTrades(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trades, err := h.tradingService.GetPendingTrades(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.NewTradeOutputs(trades))
}

// ResolveTrade settles a pending trade. A WON/LOST result in the payload is
// applied verbatim; an empty result defers to the outcome oracle.
// POST /api/admin/trades/:id/resolve
func (h *AdminHandler) ResolveTrade(c echo.Context) error {
	tradeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid trade id")
	}

	var req dto.ResolveTradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	trade, payout, err := h.tradingService.ResolveTrade(ctx, tradeID, req.Result)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.ResolutionOutput{
		Trade:  dto.NewTradeOutput(trade),
		Payout: payout,
	})
}

// GetPendingTransfers lists all transfer requests awaiting review
// GET /api/admin/transfers/pending
func (h *AdminHandler) GetPendingTransfers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	transfers, err := h.walletService.GetPendingTransfers(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.NewTransferOutputs(transfers))
}

// ApproveTransfer approves a pending transfer request and applies its
// balance effect
// POST /api/admin/transfers/:id/approve
func (h *AdminHandler) ApproveTransfer(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid transfer request id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	transfer, err := h.walletService.Approve(ctx, requestID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.NewTransferOutput(transfer))
}

// RejectTransfer rejects a pending transfer request
// POST /api/admin/transfers/:id/reject
func (h *AdminHandler) RejectTransfer(c echo.Context) error {
	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid transfer request id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	transfer, err := h.walletService.Reject(ctx, requestID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.NewTransferOutput(transfer))
}

// GetUsers lists all registered users
// GET /api/admin/users
func (h *AdminHandler) GetUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.userRepo.GetAll(ctx)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	outputs := make([]dto.UserOutput, 0, len(users))
	for _, user := range users {
		outputs = append(outputs, dto.UserOutput{
			ID:       user.ID.String(),
			Username: user.Username,
			Role:     user.Role,
			Balance:  user.Balance,
		})
	}

	return SuccessResponse(c, outputs)
}
