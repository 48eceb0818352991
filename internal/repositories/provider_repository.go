package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"skill-market.com/skill-market/pkg/constants"
	model "skill-market.com/skill-market/pkg/models"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) Create(ctx context.Context, provider *model.Provider) error {
	now := time.Now().UTC()
	provider.ID = uuid.NewString()
	provider.Role = constants.RoleProvider
	provider.CreatedAt = now
	provider.UpdatedAt = now

	return duplicateEmailOr(r.db.WithContext(ctx).Create(provider).Error)
}

func (r *ProviderRepository) FindByID(ctx context.Context, id string) (*model.Provider, error) {
	var provider model.Provider
	if err := r.db.WithContext(ctx).First(&provider, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &provider, nil
}

func (r *ProviderRepository) FindByEmail(ctx context.Context, email string) (*model.Provider, error) {
	var provider model.Provider
	if err := r.db.WithContext(ctx).First(&provider, "email = ?", email).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &provider, nil
}

func (r *ProviderRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Provider{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
