package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"bitoption/configs"
	"bitoption/internal/database"
	delivery "bitoption/internal/delivery/http"
	"bitoption/internal/infra"
	"bitoption/internal/logger"
	"bitoption/internal/repository"
	"bitoption/internal/service"
	"bitoption/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := configs.Load()

	zlog, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL, zlog)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	tradeRepo := repository.NewTradeRepository(db)
	transferRepo := repository.NewTransferRepository(db)

	// Initialize services
	oracle := service.NewCoinFlipOracle()
	tradingService := usecase.NewTradingService(userRepo, tradeRepo, oracle, zlog)
	walletService := service.NewWalletService(userRepo, transferRepo, zlog)
	expiryService := service.NewExpiryService(tradeRepo, tradingService, zlog)

	// Matured pending trades settle from the scheduler
	scheduler := infra.NewScheduler(expiryService, zlog)
	if err := scheduler.Start(); err != nil {
		zlog.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	// Initialize HTTP server
	e := echo.New()
	e.HideBanner = true

	delivery.SetupRoutes(e, &delivery.RouterConfig{
		AuthHandler:   delivery.NewAuthHandler(userRepo, cfg.Trading.StartingBalance),
		TradeHandler:  delivery.NewTradeHandler(tradingService),
		WalletHandler: delivery.NewWalletHandler(walletService),
		AdminHandler:  delivery.NewAdminHandler(tradingService, walletService, userRepo),
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("starting server",
		zap.String("addr", addr),
		zap.String("env", cfg.Server.Env),
		zap.Float64("starting_balance", cfg.Trading.StartingBalance),
	)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited gracefully")
}
