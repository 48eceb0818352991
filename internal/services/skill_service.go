package services

import (
	"context"
	"fmt"

	apperrors "skill-market.com/skill-market/internal/errors"
	repository "skill-market.com/skill-market/internal/repositories"
	model "skill-market.com/skill-market/pkg/models"
)

type SkillService struct {
	skills    *repository.SkillRepository
	providers *repository.ProviderRepository
}

func NewSkillService(skills *repository.SkillRepository, providers *repository.ProviderRepository) *SkillService {
	return &SkillService{
		skills:    skills,
		providers: providers,
	}
}

func (s *SkillService) CreateSkill(ctx context.Context, providerID string, in SkillInput) (*model.Skill, error) {
	if _, err := s.providers.FindByID(ctx, providerID); err != nil {
		return nil, translate(err, apperrors.ErrProviderNotFound, "find provider")
	}

	if err := checkSkillInput(in); err != nil {
		return nil, err
	}

	skill := &model.Skill{ProviderID: providerID}
	applySkillInput(skill, in)

	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}

	return skill, nil
}

func (s *SkillService) UpdateSkill(ctx context.Context, skillID, providerID string, in SkillInput) (*model.Skill, error) {
	skill, err := s.findSkill(ctx, skillID)
	if err != nil {
		return nil, err
	}

	if err := requireSkillOwner(skill, providerID); err != nil {
		return nil, err
	}

	if err := checkSkillInput(in); err != nil {
		return nil, err
	}

	applySkillInput(skill, in)

	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, translate(err, apperrors.ErrSkillNotFound, "update skill")
	}

	return skill, nil
}

func (s *SkillService) DeleteSkill(ctx context.Context, skillID, providerID string) error {
	skill, err := s.findSkill(ctx, skillID)
	if err != nil {
		return err
	}

	if err := requireSkillOwner(skill, providerID); err != nil {
		return err
	}

	if err := s.skills.Delete(ctx, skill.ID); err != nil {
		return translate(err, apperrors.ErrSkillNotFound, "delete skill")
	}

	return nil
}

func (s *SkillService) GetSkill(ctx context.Context, id string) (*model.Skill, error) {
	return s.findSkill(ctx, id)
}

func (s *SkillService) ListSkills(ctx context.Context, category string) ([]model.Skill, error) {
	return s.skills.List(ctx, category)
}

func (s *SkillService) ListSkillsByProvider(ctx context.Context, providerID string) ([]model.Skill, error) {
	if _, err := s.providers.FindByID(ctx, providerID); err != nil {
		return nil, translate(err, apperrors.ErrProviderNotFound, "find provider")
	}
	return s.skills.ListByProvider(ctx, providerID)
}

func (s *SkillService) findSkill(ctx context.Context, id string) (*model.Skill, error) {
	skill, err := s.skills.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrSkillNotFound, "find skill")
	}
	return skill, nil
}

func checkSkillInput(in SkillInput) error {
	if in.Experience < 0 {
		return apperrors.ErrSkillExperienceInvalid
	}
	if !in.HourlyRate.IsPositive() {
		return apperrors.ErrSkillRateNotPositive
	}
	return nil
}

func applySkillInput(skill *model.Skill, in SkillInput) {
	skill.Category = in.Category
	skill.Experience = in.Experience
	skill.WorkNature = in.WorkNature
	skill.HourlyRate = in.HourlyRate
	skill.Currency = in.Currency
}
