package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"foodmate-server/internal/client"
	"foodmate-server/internal/config"
	"foodmate-server/internal/handler"
	"foodmate-server/internal/repository"
	"foodmate-server/internal/server"
	"foodmate-server/internal/service"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
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

	logger := newLogger(&cfg.Log)
	slog.SetDefault(logger)

	db := client.InitSqliteClient(cfg.DatabaseURL)
	stripeClient := client.NewStripeClient(&cfg.Stripe)

	orderRepo := repository.NewOrderRepository(db)
	mealRepo := repository.NewMealRepository(db)
	userRepo := repository.NewUserRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	orderService := service.NewOrderService(orderRepo, mealRepo)
	paymentService := service.NewPaymentService(db, stripeClient, orderRepo, paymentRepo)
	mealService := service.NewMealService(mealRepo)
	userService := service.NewUserService(userRepo)
	reviewService := service.NewReviewService(reviewRepo, userRepo)

	srv := server.NewServer(
		&cfg.JWT,
		userRepo,
		handler.NewOrderHandler(orderService, logger),
		handler.NewPaymentHandler(paymentService, logger),
		handler.NewMealHandler(mealService),
		handler.NewUserHandler(userService, &cfg.JWT),
		handler.NewReviewHandler(reviewService),
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	logger.Info("starting HTTP server", "addr", serverAddr, "env", cfg.Environment.Name)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	logger.Info("signal received, starting graceful shutdown")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}

func newLogger(logCfg *config.Log) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(logCfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if logCfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
