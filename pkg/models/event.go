package model

import (
	"time"

	"skill-market.com/skill-market/pkg/constants"
)

// LifecycleEvent is an outbox row written after every successful transition
// and delivered to the configured sink by the event pool.
type LifecycleEvent struct {
	ID          string               `gorm:"primaryKey;size:36" json:"id"`
	Kind        constants.EventKind  `gorm:"type:varchar(40);not null" json:"kind"`
	TaskID      string               `gorm:"size:36;not null;index" json:"taskId"`
	OfferID     *string              `gorm:"size:36" json:"offerId,omitempty"`
	ActorID     string               `gorm:"size:36;not null" json:"actorId"`
	TaskStatus  constants.TaskStatus `gorm:"type:varchar(20);not null" json:"taskStatus"`
	Attempts    int                  `gorm:"not null;default:0" json:"-"`
	Version     uint                 `gorm:"not null;default:1" json:"-"`
	CreatedAt   time.Time            `gorm:"index" json:"createdAt"`
	DeliveredAt *time.Time           `gorm:"index" json:"-"`
}
