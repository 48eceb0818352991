package repository

import (
	"errors"

	"gorm.io/gorm"

	model "skill-market.com/skill-market/pkg/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrOptimisticLock = errors.New("optimistic locking conflict")
	// ErrOfferNotPending is returned by OfferRepository.Accept when the offer
	// left PENDING or the task gained an accepted offer before the write.
	ErrOfferNotPending = errors.New("offer is not pending or task already has an accepted offer")
	// ErrDuplicateEmail needs a gorm.DB opened with TranslateError.
	ErrDuplicateEmail  = errors.New("email already registered")
)

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Provider{},
		&model.Task{},
		&model.TaskProgress{},
		&model.Offer{},
		&model.Skill{},
		&model.LifecycleEvent{},
	)
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func duplicateEmailOr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}
