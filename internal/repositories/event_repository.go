package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "skill-market.com/skill-market/pkg/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.LifecycleEvent) error {
	event.ID = uuid.NewString()
	event.Version = 1
	event.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*model.LifecycleEvent, error) {
	var event model.LifecycleEvent
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &event, nil
}

// ListUndelivered returns the oldest events that have not reached the sink.
func (r *EventRepository) ListUndelivered(ctx context.Context, limit int) ([]model.LifecycleEvent, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	var events []model.LifecycleEvent
	query := r.db.WithContext(ctx).
		Where("delivered_at IS NULL").
		Order("created_at asc").Limit(limit)

	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}

func (r *EventRepository) MarkDelivered(ctx context.Context, event *model.LifecycleEvent) error {
	deliveredAt := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.LifecycleEvent{}).
		Where("id = ? AND version = ?", event.ID, event.Version).
		Updates(map[string]interface{}{
			"delivered_at": deliveredAt,
			"attempts":     event.Attempts + 1,
			"version":      gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	event.Attempts++
	event.DeliveredAt = &deliveredAt
	event.Version++
	return nil
}

func (r *EventRepository) IncrementAttempts(ctx context.Context, event *model.LifecycleEvent) error {
	res := r.db.WithContext(ctx).Model(&model.LifecycleEvent{}).
		Where("id = ? AND version = ?", event.ID, event.Version).
		Updates(map[string]interface{}{
			"attempts": event.Attempts + 1,
			"version":  gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	event.Attempts++
	event.Version++
	return nil
}
