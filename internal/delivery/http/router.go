package http

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	custommiddleware "bitoption/internal/middleware"
)

// RouterConfig holds all dependencies for routing
type RouterConfig struct {
	AuthHandler   *AuthHandler
	TradeHandler  *TradeHandler
	WalletHandler *WalletHandler
	AdminHandler  *AdminHandler
}

// SetupRoutes configures all HTTP routes
func SetupRoutes(e *echo.Echo, config *RouterConfig) {
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return SuccessResponse(c, map[string]interface{}{
			"status":    "healthy",
			"service":   "bitoption-api",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// API group
	api := e.Group("/api")

	// Auth routes (public)
	auth := api.Group("/auth")
	{
		auth.POST("/login", config.AuthHandler.Login)
		auth.POST("/logout", config.AuthHandler.Logout)
		auth.POST("/register", config.AuthHandler.Register)
	}

	// User routes (protected with AuthMiddleware)
	user := api.Group("/user", custommiddleware.AuthMiddleware)
	{
		user.GET("/me", config.AuthHandler.GetMe)
		user.POST("/trades", config.TradeHandler.CreateTrade)
		user.GET("/trades", config.TradeHandler.GetTrades)
		user.GET("/trades/:id", config.TradeHandler.GetTrade)
		user.POST("/wallet/deposits", config.WalletHandler.SubmitDeposit)
		user.POST("/wallet/withdrawals", config.WalletHandler.SubmitWithdrawal)
		user.GET("/wallet/transfers", config.WalletHandler.GetTransfers)
	}

	// Admin routes (protected with Auth + Admin middleware). Manual trade
	// resolution lives only here.
	admin := api.Group("/admin", custommiddleware.AuthMiddleware, custommiddleware.AdminMiddleware)
	{
		admin.GET("/trades/pending", config.AdminHandler.GetPendingTrades)
		admin.POST("/trades/:id/resolve", config.AdminHandler.ResolveTrade)
		admin.GET("/transfers/pending", config.AdminHandler.GetPendingTransfers)
		admin.POST("/transfers/:id/approve", config.AdminHandler.ApproveTransfer)
		admin.POST("/transfers/:id/reject", config.AdminHandler.RejectTransfer)
		admin.GET("/users", config.AdminHandler.GetUsers)
	}
}
