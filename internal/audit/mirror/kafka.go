// Package mirror ships selected audit entries to Kafka so downstream
// ledgers can keep a tamper-evident copy.
package mirror

import (
	"context"
	"encoding/json"
	"fmt"

	"datasentinel/internal/audit"
	"datasentinel/internal/platform/kafka/producer"
)

// Producer is the subset of the Kafka producer the mirror needs.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// Kafka mirrors entries as JSON records keyed by partner.
type Kafka struct {
	producer Producer
	topic    string
}

func NewKafka(p Producer, topic string) *Kafka {
	return &Kafka{producer: p, topic: topic}
}

func (k *Kafka) Mirror(ctx context.Context, entry audit.Entry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode audit entry: %w", err)
	}
	key := entry.PartnerID
	if key == "" {
		key = entry.UserID
	}
	return k.producer.Produce(ctx, &producer.Message{
		Topic: k.topic,
		Key:   []byte(key),
		Value: value,
		Headers: map[string]string{
			"kind":       string(entry.Kind),
			"request_id": entry.RequestID,
		},
	})
}
