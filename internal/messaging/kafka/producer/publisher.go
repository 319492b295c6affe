package producer

import (
	"context"
	"errors"

	"go-hrms/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafkago.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func toMessage(event kafka.OutboxEvent) kafkago.Message {
	return kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}
}

// publishBatch writes batch in one call and returns one error slot per event.
// A partial failure reported as kafkago.WriteErrors is attributed per message;
// any other error fails the whole batch.
func publishBatch(ctx context.Context, writer MessageWriter, batch []kafka.OutboxEvent) []error {
	msgs := make([]kafkago.Message, len(batch))
	for i, e := range batch {
		msgs[i] = toMessage(e)
	}

	results := make([]error, len(batch))
	err := writer.WriteMessages(ctx, msgs...)
	if err == nil {
		return results
	}

	var writeErrs kafkago.WriteErrors
	if errors.As(err, &writeErrs) && len(writeErrs) == len(batch) {
		copy(results, writeErrs)
		return results
	}
	for i := range results {
		results[i] = err
	}
	return results
}
