package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	queue     []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.queue) == 0 {
		f.cancel()
		return kafkago.Message{}, ctx.Err()
	}
	msg := f.queue[0]
	f.queue = f.queue[1:]
	return msg, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

type fakeSalaries struct {
	calls []string
	err   error
}

func (f *fakeSalaries) CreateDefault(ctx context.Context, companyID, profileID string) error {
	f.calls = append(f.calls, companyID+"/"+profileID)
	return f.err
}

type fakeAllocations struct {
	calls []string
	err   error
}

func (f *fakeAllocations) SeedDefaultAllocations(ctx context.Context, companyID, profileID string, year int) error {
	f.calls = append(f.calls, fmt.Sprintf("%s/%s/%d", companyID, profileID, year))
	return f.err
}

func profileCreated(t *testing.T, profileID string) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(events.ProfileCreatedEvent{
		EventType:   events.EventTypeProfileCreated,
		ProfileID:   profileID,
		CompanyID:   "c-1",
		JoiningYear: 2024,
	})
	assert.NoError(t, err)
	return kafkago.Message{Key: []byte(profileID), Value: body}
}

func run(reader *fakeReader, salaries *fakeSalaries, allocations *fakeAllocations) {
	ctx, cancel := context.WithCancel(context.Background())
	reader.cancel = cancel
	consumer.ConsumeProfileLifecycle(ctx, reader, salaries, allocations, zap.NewNop())
}

func TestConsumeProfileLifecycle(t *testing.T) {
	t.Run("provisions and commits", func(t *testing.T) {
		reader := &fakeReader{queue: []kafkago.Message{profileCreated(t, "p-1")}}
		salaries := &fakeSalaries{}
		allocations := &fakeAllocations{}

		run(reader, salaries, allocations)

		assert.Equal(t, []string{"c-1/p-1"}, salaries.calls)
		assert.Equal(t, []string{"c-1/p-1/2024"}, allocations.calls)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("duplicate salary still seeds allocations", func(t *testing.T) {
		reader := &fakeReader{queue: []kafkago.Message{profileCreated(t, "p-1")}}
		salaries := &fakeSalaries{err: fmt.Errorf("salary: %w", consumer.ErrAlreadyProvisioned)}
		allocations := &fakeAllocations{}

		run(reader, salaries, allocations)

		assert.Len(t, allocations.calls, 1)
		assert.Len(t, reader.committed, 1)
	})

	t.Run("salary failure leaves message uncommitted", func(t *testing.T) {
		reader := &fakeReader{queue: []kafkago.Message{profileCreated(t, "p-1")}}
		salaries := &fakeSalaries{err: errors.New("db down")}
		allocations := &fakeAllocations{}

		run(reader, salaries, allocations)

		assert.Empty(t, allocations.calls)
		assert.Empty(t, reader.committed)
	})

	t.Run("undecodable message is committed", func(t *testing.T) {
		reader := &fakeReader{queue: []kafkago.Message{{Value: []byte("not json")}}}
		salaries := &fakeSalaries{}

		run(reader, salaries, &fakeAllocations{})

		assert.Empty(t, salaries.calls)
		assert.Len(t, reader.committed, 1)
	})
}
