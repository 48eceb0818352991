package events

import (
	"context"
	"time"

	model "skill-market.com/skill-market/pkg/models"
)

// Sink delivers lifecycle events outside the process.
type Sink interface {
	Send(ctx context.Context, event model.LifecycleEvent) error
	Close() error
}

// Message is the wire form of a lifecycle event.
type Message struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	TaskID     string    `json:"taskId"`
	OfferID    string    `json:"offerId,omitempty"`
	ActorID    string    `json:"actorId"`
	TaskStatus string    `json:"taskStatus"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewMessage(event model.LifecycleEvent) Message {
	msg := Message{
		ID:         event.ID,
		Kind:       string(event.Kind),
		TaskID:     event.TaskID,
		ActorID:    event.ActorID,
		TaskStatus: string(event.TaskStatus),
		Timestamp:  event.CreatedAt,
	}
	if event.OfferID != nil {
		msg.OfferID = *event.OfferID
	}
	return msg
}
