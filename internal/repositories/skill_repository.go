package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "skill-market.com/skill-market/pkg/models"
)

type SkillRepository struct {
	db *gorm.DB
}

func NewSkillRepository(db *gorm.DB) *SkillRepository {
	return &SkillRepository{db: db}
}

func (r *SkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	now := time.Now().UTC()
	skill.ID = uuid.NewString()
	skill.CreatedAt = now
	skill.UpdatedAt = now

	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *SkillRepository) FindByID(ctx context.Context, id string) (*model.Skill, error) {
	var skill model.Skill
	if err := r.db.WithContext(ctx).First(&skill, "id = ?", id).Error; err != nil {
		return nil, notFoundOr(err)
	}
	return &skill, nil
}

// List returns every skill, or only those in category when it is not empty.
func (r *SkillRepository) List(ctx context.Context, category string) ([]model.Skill, error) {
	query := r.db.WithContext(ctx).Order("created_at desc")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var skills []model.Skill
	err := query.Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) ListByProvider(ctx context.Context, providerID string) ([]model.Skill, error) {
	var skills []model.Skill
	err := r.db.WithContext(ctx).
		Where("provider_id = ?", providerID).
		Order("created_at desc").
		Find(&skills).Error
	return skills, err
}

func (r *SkillRepository) Update(ctx context.Context, skill *model.Skill) error {
	skill.UpdatedAt = time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&model.Skill{}).
		Where("id = ?", skill.ID).
		Updates(map[string]interface{}{
			"category":    skill.Category,
			"experience":  skill.Experience,
			"work_nature": skill.WorkNature,
			"hourly_rate": skill.HourlyRate,
			"currency":    skill.Currency,
			"updated_at":  skill.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SkillRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&model.Skill{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
