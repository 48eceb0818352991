package events

import (
	"context"
	"encoding/json"
	"log"

	model "skill-market.com/skill-market/pkg/models"
)

// LogSink writes events to the process log. Used when no broker is configured.
type LogSink struct {
	logger *log.Logger
}

func NewLogSink(logger *log.Logger) *LogSink {
	if logger == nil {
		logger = log.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(_ context.Context, event model.LifecycleEvent) error {
	payload, err := json.Marshal(NewMessage(event))
	if err != nil {
		return err
	}

	s.logger.Printf("event: %s", payload)
	return nil
}

func (s *LogSink) Close() error {
	return nil
}
