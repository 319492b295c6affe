package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-hrms/internal/access"
	"go-hrms/internal/config"
	"go-hrms/internal/events"
	"go-hrms/internal/leave"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/messaging/kafka/consumer"
	"go-hrms/internal/salary"

	"go.uber.org/zap"
)

// RunConsumer provisions salary and leave allocations for new profiles until
// SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	infra := &Infra{Config: cfg, GormDB: gormDB, SQLDB: sqlDB, Logger: zap.L()}
	now := infra.Clock()

	gate, err := access.NewGate(infra.Logger)
	if err != nil {
		return err
	}
	salaryService := salary.NewService(salary.NewRepository(gormDB), gate, now, infra.Logger)
	leaveService := leave.NewService(sqlDB, leave.NewRepository(gormDB), gate, kafka.NewOutboxRepository(sqlDB), now, infra.Logger)

	reader := consumer.NewReader(cfg.Kafka.Broker, cfg.Kafka.ConsumerGroup, events.ProfileLifecycleTopic)
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeProfileLifecycle(ctx, reader, salaryService, leaveService, logger)

	logger.Info("consumer shutting down")
	return nil
}
