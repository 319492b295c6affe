package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// OutboxStatusDead rows exhausted MaxPublishAttempts and are left for an operator.
	OutboxStatusDead = "dead"

	MaxPublishAttempts = 10
)

type Aggregate string

const (
	AggregateProfile      Aggregate = "profile"
	AggregateLeaveRequest Aggregate = "leave_request"
)

// OutboxEvent is a domain event written in the same transaction as the state
// change it describes and relayed to Kafka later.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType Aggregate
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewOutboxEvent encodes payload as JSON and tags the event with the request
// id carried by ctx.
func NewOutboxEvent(ctx context.Context, aggregate Aggregate, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("encode %s payload: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: aggregate,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}, nil
}

func (e OutboxEvent) Validate() error {
	switch {
	case e.ID == "":
		return errors.New("outbox id is required")
	case e.AggregateID == "":
		return errors.New("outbox aggregate id is required")
	case e.Topic == "":
		return errors.New("outbox topic is required")
	case len(e.Payload) == 0:
		return errors.New("outbox payload is required")
	case e.Status != OutboxStatusPending:
		return fmt.Errorf("new outbox event must be pending, got %q", e.Status)
	}
	return nil
}
