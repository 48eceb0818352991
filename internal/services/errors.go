package services

import (
	"errors"
	"fmt"

	apperrors "skill-market.com/skill-market/internal/errors"
	repository "skill-market.com/skill-market/internal/repositories"
)

// translate maps repository failures onto the exceptions callers see.
func translate(err error, notFound *apperrors.Exception, action string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return notFound
	case errors.Is(err, repository.ErrOptimisticLock):
		return apperrors.ErrOptimisticLock
	default:
		return fmt.Errorf("%s: %w", action, err)
	}
}
