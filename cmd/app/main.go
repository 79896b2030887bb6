package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight/cmd"
	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/memory"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/redislock"
	"freight/internal/core/ports"
	"freight/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs := getConfigs()
	logger := logging.NewLogger(os.Stdout, configs.LogLevel)

	uowFactory, closeStorage := openStorage(configs, logger)
	defer closeStorage()

	locker, closeLocker := openScheduleLocker(configs, logger)
	defer closeLocker()

	app, err := cmd.NewCompositionRoot(configs, uowFactory, locker, logger)
	if err != nil {
		log.Fatalf("Error composing application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config, err := cmd.LoadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return config
}

func openStorage(configs cmd.Config, logger *slog.Logger) (ports.UnitOfWorkFactory, func()) {
	if configs.Storage == cmd.StorageMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		return memory.NewUnitOfWorkFactory(memory.NewStore(configs.ApprovalLockTimeout)), func() {}
	}

	db, err := gorm.Open(gorm_postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err = postgres.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	closeDB := func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}
	return postgres.NewGormUnitOfWorkFactory(db, configs.ApprovalLockTimeout), closeDB
}

func openScheduleLocker(configs cmd.Config, logger *slog.Logger) (ports.ScheduleLocker, func()) {
	if configs.ScheduleLockScope != cmd.LockScopeDriver {
		return nil, func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     configs.RedisAddr,
		Password: configs.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}

	logger.Info("Approvals are serialized per driver", "redis", configs.RedisAddr)
	return redislock.NewScheduleLocker(client, configs.ApprovalLockTimeout), func() { _ = client.Close() }
}

func startWebServer(app cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := httpadapter.NewEcho(app.CreateServer())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
