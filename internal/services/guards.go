package services

import (
	apperrors "skill-market.com/skill-market/internal/errors"
	model "skill-market.com/skill-market/pkg/models"
)

func requireTaskOwner(task *model.Task, callerID string) error {
	if task.UserID != callerID {
		return apperrors.ErrNotTaskOwner
	}
	return nil
}

func requireAssignedProvider(task *model.Task, providerID string) error {
	if !task.AssignedTo(providerID) {
		return apperrors.ErrNotAssignedProvider
	}
	return nil
}

func requireSkillOwner(skill *model.Skill, providerID string) error {
	if skill.ProviderID != providerID {
		return apperrors.ErrNotSkillOwner
	}
	return nil
}
