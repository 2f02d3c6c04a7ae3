package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-api/internal/auth"
	"storefront-api/internal/client"
	"storefront-api/internal/config"
	"storefront-api/internal/handler"
	"storefront-api/internal/logging"
	"storefront-api/internal/metrics"
	"storefront-api/internal/repository"
	"storefront-api/internal/server"
	"storefront-api/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db := client.InitMysqlClient(cfg.DatabaseURL)
	razorpayClient := client.NewRazorpayClient(&cfg.Razorpay)
	braintreeClient := client.NewBraintreeClient(&cfg.Braintree)

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)

	m := metrics.New()
	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	orderService := service.NewOrderService(
		orderRepo,
		cartRepo,
		razorpayClient,
		braintreeClient,
		cfg,
		logger,
		m,
	)

	orderHandler := handler.NewOrderHandler(orderService, logger)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	srv := server.NewServer(orderHandler, verifier, m, logger)

	logger.Info("starting HTTP server", zap.String("addr", serverAddr))
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("HTTP server shutdown error", zap.Error(err))
	}
}
