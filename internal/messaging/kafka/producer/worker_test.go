package producer_test

import (
	"context"
	"errors"
	"testing"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	kafkaMock "go-hrms/internal/messaging/kafka/mock"
	"go-hrms/internal/messaging/kafka/producer"
	"go-hrms/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeWriter fails messages whose key is listed in failFor, reporting them the
// way kafkago.Writer reports partial batch failures.
type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]bool
	err     error
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	if f.err != nil {
		return f.err
	}
	var (
		errs   = make(kafkago.WriteErrors, len(msgs))
		failed bool
	)
	for i, m := range msgs {
		if f.failFor[string(m.Key)] {
			errs[i] = errors.New("broker unavailable")
			failed = true
			continue
		}
		f.written = append(f.written, m)
	}
	if failed {
		return errs
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		event, err := kafka.NewOutboxEvent(contextutil.WithRequestID(ctx, "req-1"), kafka.AggregateLeaveRequest, "leave-1", events.EventTypeLeaveApproved, events.LeaveLifecycleTopic, events.LeaveApprovedEvent{LeaveID: "leave-1"})
		assert.NoError(t, err)

		repo.EXPECT().ClaimPending(ctx, 50, gomock.Any()).Return([]kafka.OutboxEvent{event}, nil)
		repo.EXPECT().MarkSent(ctx, event.ID).Return(nil)

		claimed, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 1, claimed)
		assert.Len(t, writer.written, 1)
		assert.Equal(t, events.LeaveLifecycleTopic, writer.written[0].Topic)
		assert.Equal(t, "leave-1", string(writer.written[0].Key))
		assert.Contains(t, writer.written[0].Headers, kafkago.Header{Key: "request_id", Value: []byte("req-1")})
		assert.Contains(t, writer.written[0].Headers, kafkago.Header{Key: "event_id", Value: []byte(event.ID)})
	})

	t.Run("partial failure marks only the failed event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]bool{"p-2": true}}

		ok := kafka.OutboxEvent{ID: "o-1", AggregateID: "p-1", Topic: events.ProfileLifecycleTopic, Payload: []byte(`{}`)}
		bad := kafka.OutboxEvent{ID: "o-2", AggregateID: "p-2", Topic: events.ProfileLifecycleTopic, Payload: []byte(`{}`)}

		repo.EXPECT().ClaimPending(ctx, 50, gomock.Any()).Return([]kafka.OutboxEvent{ok, bad}, nil)
		repo.EXPECT().MarkSent(ctx, "o-1").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "o-2", "broker unavailable").Return(nil)

		claimed, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 2, claimed)
		assert.Len(t, writer.written, 1)
	})

	t.Run("transport failure fails the whole batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{err: errors.New("dial tcp: connection refused")}

		a := kafka.OutboxEvent{ID: "o-1", AggregateID: "p-1", Topic: events.ProfileLifecycleTopic, Payload: []byte(`{}`)}
		b := kafka.OutboxEvent{ID: "o-2", AggregateID: "p-2", Topic: events.ProfileLifecycleTopic, Payload: []byte(`{}`), RetryCount: kafka.MaxPublishAttempts - 1}

		repo.EXPECT().ClaimPending(ctx, 50, gomock.Any()).Return([]kafka.OutboxEvent{a, b}, nil)
		repo.EXPECT().MarkFailed(ctx, "o-1", "dial tcp: connection refused").Return(nil)
		repo.EXPECT().MarkFailed(ctx, "o-2", "dial tcp: connection refused").Return(nil)

		claimed, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Equal(t, 2, claimed)
	})

	t.Run("claim error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ClaimPending(ctx, 50, gomock.Any()).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.Error(t, err)
	})

	t.Run("empty batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ClaimPending(ctx, 50, gomock.Any()).Return(nil, nil)

		claimed, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())

		assert.NoError(t, err)
		assert.Zero(t, claimed)
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := kafkaMock.NewMockOutboxRepository(ctrl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 0)
		close(done)
	}()

	<-done
}
