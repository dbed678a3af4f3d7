package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"bitoption/internal/delivery/http/dto"
	"bitoption/internal/middleware"
	"bitoption/internal/service"
)

// WalletHandler handles deposit/withdrawal request submission and listing
type WalletHandler struct {
	walletService *service.WalletService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService *service.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// SubmitDeposit creates a pending deposit request
// POST /api/user/wallet/deposits
func (h *WalletHandler) SubmitDeposit(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TransferRequestInput
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	transfer, err := h.walletService.SubmitDeposit(ctx, userID, req.Amount, req.Address)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, dto.NewTransferOutput(transfer))
}

// SubmitWithdrawal creates a pending withdrawal request
// POST /api/user/wallet/withdrawals
func (h *WalletHandler) SubmitWithdrawal(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TransferRequestInput
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	transfer, err := h.walletService.SubmitWithdrawal(ctx, userID, req.Amount, req.Address)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, dto.NewTransferOutput(transfer))
}

// GetTransfers lists the authenticated user's transfer requests, newest first
// GET /api/user/wallet/transfers
func (h *WalletHandler) GetTransfers(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	transfers, err := h.walletService.GetUserTransfers(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.NewTransferOutputs(transfers))
}
