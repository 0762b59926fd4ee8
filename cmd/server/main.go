package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"interview-scheduler/internal/app"
	"interview-scheduler/internal/repository"
	"interview-scheduler/internal/server"
	"interview-scheduler/internal/service"
	"interview-scheduler/migrations"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	slog := logger.Sugar()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		slog.Fatal("DATABASE_URL required")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		slog.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := migrations.Up(ctx, pool); err != nil {
		slog.Fatalf("apply migrations: %v", err)
	}

	capacity := service.DefaultSlotCapacity
	if raw := os.Getenv("SLOT_CAPACITY"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			slog.Fatalf("invalid SLOT_CAPACITY %q", raw)
		}
		capacity = parsed
	}

	txManager := repository.NewPostgresTxManager(pool)

	api := app.New(
		service.NewInterviewerService(txManager, slog),
		service.NewAvailabilityService(txManager, slog),
		service.NewSlotService(txManager, slog, capacity),
		service.NewBookingService(txManager, slog, capacity),
		slog,
	)

	router := gin.Default()
	api.RegisterRoutes(router, app.AuthMiddleware(app.AuthConfigFromEnv()))

	slog.Infow("server starting", "capacity", capacity)
	if err := server.Run(ctx, router); err != nil {
		slog.Fatalf("server: %v", err)
	}
}
