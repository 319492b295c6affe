package producer

import (
	"context"
	"time"

	"go-hrms/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	batchSize  = 50
	claimLease = 30 * time.Second
)

// ProcessOutboxEvents relays pending outbox rows to Kafka until ctx is done.
// Full batches are followed immediately by another poll.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.relay")
	timer := time.NewTimer(pollInterval)
	defer timer.Stop()

	log.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox relay stopped")
			return
		case <-timer.C:
		}

		wait := pollInterval
		claimed, err := ProcessPendingEvents(ctx, repo, writer, log)
		switch {
		case err != nil:
			log.Error("relay outbox batch failed", zap.Error(err))
		case claimed == batchSize:
			wait = 0
		}
		timer.Reset(wait)
	}
}

// ProcessPendingEvents claims and publishes one batch. It returns how many
// events were claimed, whether or not each publish succeeded.
func ProcessPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	batch, err := repo.ClaimPending(ctx, batchSize, claimLease)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	results := publishBatch(ctx, writer, batch)

	sent := 0
	for i, event := range batch {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.Int("attempt", event.RetryCount+1),
		}

		if pubErr := results[i]; pubErr != nil {
			logger.Warn("publish outbox event failed", append(fields, zap.Error(pubErr))...)
			if err := repo.MarkFailed(ctx, event.ID, pubErr.Error()); err != nil {
				logger.Error("record outbox failure failed", append(fields, zap.Error(err))...)
			}
			if event.RetryCount+1 >= kafka.MaxPublishAttempts {
				logger.Error("outbox event dead-lettered", fields...)
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
	}

	logger.Info("outbox batch relayed", zap.Int("claimed", len(batch)), zap.Int("sent", sent))
	return len(batch), nil
}
