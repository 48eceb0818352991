package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skill-market.com/skill-market/pkg/constants"
	model "skill-market.com/skill-market/pkg/models"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) Create(ctx context.Context, offer *model.Offer) error {
	now := time.Now().UTC()
	offer.ID = uuid.NewString()
	offer.Status = constants.OfferStatusPending
	offer.CreatedAt = now
	offer.UpdatedAt = now

	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *OfferRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.WithContext(ctx).First(&offer, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &offer, nil
}

func (r *OfferRepository) ListByTask(ctx context.Context, taskID string) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) ListByProvider(ctx context.Context, providerID string) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) FindPendingByTask(ctx context.Context, taskID string) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND status = ?", taskID, constants.OfferStatusPending).
		Find(&offers).Error
	return offers, err
}

// FindAcceptedByTask returns ErrNotFound when the task has no accepted offer.
func (r *OfferRepository) FindAcceptedByTask(ctx context.Context, taskID string) (*model.Offer, error) {
	var offer model.Offer
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND status = ?", taskID, constants.OfferStatusAccepted).
		First(&offer).Error
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &offer, nil
}

// UpdateStatus moves a PENDING offer to status. ErrOfferNotPending means the
// offer was decided by someone else first.
func (r *OfferRepository) UpdateStatus(ctx context.Context, offer *model.Offer, status constants.OfferStatus) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Offer{}).
		Where("id = ? AND status = ?", offer.ID, constants.OfferStatusPending).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": now,
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrOfferNotPending
	}

	offer.Status = status
	offer.UpdatedAt = now
	return nil
}

// Accept marks the offer ACCEPTED and assigns its provider to the task in a
// single transaction. The offer update only matches while it is still PENDING
// and the task holds no other accepted offer.
func (r *OfferRepository) Accept(ctx context.Context, offer *model.Offer, task *model.Task) error {
	now := time.Now().UTC()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accepted := tx.Model(&model.Offer{}).
			Select("1").
			Where("task_id = ? AND status = ?", offer.TaskID, constants.OfferStatusAccepted)

		res := tx.Model(&model.Offer{}).
			Where("id = ? AND status = ?", offer.ID, constants.OfferStatusPending).
			Where("NOT EXISTS (?)", accepted).
			Updates(map[string]interface{}{
				"status":     constants.OfferStatusAccepted,
				"updated_at": now,
			})

		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrOfferNotPending
		}

		providerID := offer.ProviderID
		task.Status = constants.TaskStatusInProgress
		task.ProviderID = &providerID
		if err := updateTask(tx, task); err != nil {
			return err
		}

		offer.Status = constants.OfferStatusAccepted
		offer.UpdatedAt = now
		return nil
	})
}
