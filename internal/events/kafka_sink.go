package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	model "skill-market.com/skill-market/pkg/models"
)

type KafkaSink struct {
	writer *kafka.Writer
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}

	return &KafkaSink{writer: writer}
}

// Send keys messages by task id so one task's events stay ordered on a
// single partition.
func (s *KafkaSink) Send(ctx context.Context, event model.LifecycleEvent) error {
	payload, err := json.Marshal(NewMessage(event))
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.TaskID),
		Value: payload,
		Time:  time.Now(),
	}

	return s.writer.WriteMessages(ctx, message)
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
