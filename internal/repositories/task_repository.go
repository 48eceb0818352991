package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skill-market.com/skill-market/pkg/constants"
	model "skill-market.com/skill-market/pkg/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	now := time.Now().UTC()
	task.ID = uuid.NewString()
	task.Status = constants.TaskStatusOpen
	task.Version = 1
	task.CreatedAt = now
	task.UpdatedAt = now

	return r.db.WithContext(ctx).Create(task).Error
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &task, nil
}

func (r *TaskRepository) List(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) ListByProvider(ctx context.Context, providerID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&tasks).Error
	return tasks, err
}

// Update writes every mutable column of task, guarded by its version.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	return updateTask(r.db.WithContext(ctx), task)
}

// AppendProgress moves the task to IN_PROGRESS and stores the entry in one
// transaction.
func (r *TaskRepository) AppendProgress(ctx context.Context, task *model.Task, entry *model.TaskProgress) error {
	entry.ID = uuid.NewString()
	entry.TaskID = task.ID
	entry.Status = constants.ProgressStatusInProgress
	entry.CreatedAt = time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		task.Status = constants.TaskStatusInProgress
		if err := updateTask(tx, task); err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *TaskRepository) ListProgress(ctx context.Context, taskID string) ([]model.TaskProgress, error) {
	var entries []model.TaskProgress
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&entries).Error
	return entries, err
}

// Delete removes the task and every offer made on it.
func (r *TaskRepository) Delete(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", task.ID).Delete(&model.Offer{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ? AND version = ?", task.ID, task.Version).Delete(&model.Task{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOptimisticLock
		}
		return nil
	})
}

func updateTask(db *gorm.DB, task *model.Task) error {
	now := time.Now().UTC()
	res := db.Model(&model.Task{}).
		Where("id = ? AND version = ?", task.ID, task.Version).
		Updates(map[string]interface{}{
			"name":                task.Name,
			"category":            task.Category,
			"description":         task.Description,
			"expected_start_date": task.ExpectedStartDate,
			"expected_hours":      task.ExpectedHours,
			"hourly_rate":         task.HourlyRate,
			"currency":            task.Currency,
			"status":              task.Status,
			"provider_id":         task.ProviderID,
			"completed_at":        task.CompletedAt,
			"updated_at":          now,
			"version":             gorm.Expr("version + 1"),
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOptimisticLock
	}

	task.Version++
	task.UpdatedAt = now
	return nil
}
