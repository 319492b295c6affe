package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-hrms/internal/events"

	"go.uber.org/zap"
)

type SalaryProvisioner interface {
	CreateDefault(ctx context.Context, companyID, profileID string) error
}

type AllocationSeeder interface {
	SeedDefaultAllocations(ctx context.Context, companyID, profileID string, year int) error
}

// ErrAlreadyProvisioned lets provisioners report a duplicate event that is safe to commit.
var ErrAlreadyProvisioned = errors.New("already provisioned")

// ConsumeProfileLifecycle seeds a default salary row and leave allocations for
// every profile_created event. Messages are committed only after both succeed.
func ConsumeProfileLifecycle(
	ctx context.Context,
	reader MessageReader,
	salaries SalaryProvisioner,
	allocations AllocationSeeder,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.profile_lifecycle")
	log.Info("profile lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("profile lifecycle consumer stopped")
				return
			}
			log.Error("fetch profile lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.ProfileCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode profile lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}
		if event.EventType != events.EventTypeProfileCreated {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := salaries.CreateDefault(ctx, event.CompanyID, event.ProfileID); err != nil {
			if !errors.Is(err, ErrAlreadyProvisioned) {
				log.Error("create default salary failed",
					zap.String("profile_id", event.ProfileID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				continue
			}
			log.Warn("salary already exists for event, skipping",
				zap.String("profile_id", event.ProfileID),
				zap.String("company_id", event.CompanyID),
			)
		}

		year := event.JoiningYear
		if year == 0 {
			year = time.Now().UTC().Year()
		}
		if err := allocations.SeedDefaultAllocations(ctx, event.CompanyID, event.ProfileID, year); err != nil {
			log.Error("seed default leave allocations failed",
				zap.String("profile_id", event.ProfileID),
				zap.Int("year", year),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit profile lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("profile provisioned from profile_created event",
			zap.String("profile_id", event.ProfileID),
			zap.String("company_id", event.CompanyID),
		)
	}
}
