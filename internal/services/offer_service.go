package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	apperrors "skill-market.com/skill-market/internal/errors"
	"skill-market.com/skill-market/internal/locks"
	repository "skill-market.com/skill-market/internal/repositories"
	"skill-market.com/skill-market/pkg/constants"
	model "skill-market.com/skill-market/pkg/models"
)

type OfferService struct {
	offers    *repository.OfferRepository
	tasks     *repository.TaskRepository
	providers *repository.ProviderRepository
	locker    locks.TaskLocker
	lockWait  time.Duration
	events    EventPublisher
}

func NewOfferService(
	offers *repository.OfferRepository,
	tasks *repository.TaskRepository,
	providers *repository.ProviderRepository,
	locker locks.TaskLocker,
	lockWait time.Duration,
	events EventPublisher,
) *OfferService {
	return &OfferService{
		offers:    offers,
		tasks:     tasks,
		providers: providers,
		locker:    locker,
		lockWait:  lockWait,
		events:    events,
	}
}

// CreateOffer holds the task lock across the duplicate check and the insert,
// so a provider keeps at most one pending offer per task.
func (s *OfferService) CreateOffer(ctx context.Context, providerID string, in OfferInput) (*model.Offer, error) {
	release, err := s.lockTask(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}
	defer release()

	task, err := s.findTask(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}

	if task.Status != constants.TaskStatusOpen {
		return nil, apperrors.ErrOfferTaskNotOpen
	}

	if _, err := s.providers.FindByID(ctx, providerID); err != nil {
		return nil, translate(err, apperrors.ErrProviderNotFound, "find provider")
	}

	if !in.HourlyRate.IsPositive() {
		return nil, apperrors.ErrOfferRateNotPositive
	}

	pending, err := s.offers.FindPendingByTask(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("find pending offers: %w", err)
	}

	for _, o := range pending {
		if o.ProviderID == providerID {
			return nil, apperrors.ErrDuplicatePendingOffer
		}
	}

	offer := &model.Offer{
		TaskID:     task.ID,
		ProviderID: providerID,
		HourlyRate: in.HourlyRate,
		Currency:   in.Currency,
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}

	s.events.Publish(ctx, newEvent(constants.EventOfferCreated, task, &offer.ID, providerID))
	return offer, nil
}

// AcceptOffer assigns the offer's provider to the task. Concurrent accepts on
// one task are serialised by the task lock, and the write itself only lands
// while the task has no accepted offer.
func (s *OfferService) AcceptOffer(ctx context.Context, offerID, requesterID string) (*model.Offer, error) {
	offer, err := s.findOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	release, err := s.lockTask(ctx, offer.TaskID)
	if err != nil {
		return nil, err
	}
	defer release()

	offer, task, err := s.decidable(ctx, offerID, requesterID)
	if err != nil {
		return nil, err
	}

	accepted, err := s.offers.FindAcceptedByTask(ctx, task.ID)
	switch {
	case err == nil && accepted.ID != offer.ID:
		return nil, apperrors.ErrTaskAlreadyHasAccepted
	case err != nil && !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("find accepted offer: %w", err)
	}

	if err := s.offers.Accept(ctx, offer, task); err != nil {
		if errors.Is(err, repository.ErrOfferNotPending) {
			return nil, apperrors.ErrTaskAlreadyHasAccepted
		}
		return nil, translate(err, apperrors.ErrTaskNotFound, "accept offer")
	}

	s.events.Publish(ctx, newEvent(constants.EventOfferAccepted, task, &offer.ID, requesterID))
	return offer, nil
}

// RejectOffer declines a pending offer. The task is left untouched.
func (s *OfferService) RejectOffer(ctx context.Context, offerID, requesterID string) (*model.Offer, error) {
	offer, task, err := s.decidable(ctx, offerID, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.offers.UpdateStatus(ctx, offer, constants.OfferStatusRejected); err != nil {
		if errors.Is(err, repository.ErrOfferNotPending) {
			return nil, apperrors.ErrOfferNotPending
		}
		return nil, fmt.Errorf("reject offer: %w", err)
	}

	s.events.Publish(ctx, newEvent(constants.EventOfferRejected, task, &offer.ID, requesterID))
	return offer, nil
}

// decidable loads an offer and its task and checks that requesterID may
// accept or reject it.
func (s *OfferService) decidable(ctx context.Context, offerID, requesterID string) (*model.Offer, *model.Task, error) {
	offer, err := s.findOffer(ctx, offerID)
	if err != nil {
		return nil, nil, err
	}

	task, err := s.findTask(ctx, offer.TaskID)
	if err != nil {
		return nil, nil, err
	}

	if err := requireTaskOwner(task, requesterID); err != nil {
		return nil, nil, err
	}

	if offer.Status != constants.OfferStatusPending {
		return nil, nil, apperrors.ErrOfferNotPending
	}

	return offer, task, nil
}

func (s *OfferService) lockTask(ctx context.Context, taskID string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	token, err := s.locker.Acquire(lockCtx, taskID)
	if err != nil {
		if errors.Is(err, locks.ErrLockNotAcquired) {
			return nil, apperrors.ErrTaskLocked
		}
		return nil, fmt.Errorf("lock task: %w", err)
	}

	return func() {
		if err := s.locker.Release(context.Background(), taskID, token); err != nil {
			log.Printf("offer service: failed to release lock on task %s: %v", taskID, err)
		}
	}, nil
}

func (s *OfferService) GetOffer(ctx context.Context, id string) (*model.Offer, error) {
	return s.findOffer(ctx, id)
}

func (s *OfferService) ListOffersByTask(ctx context.Context, taskID string) ([]model.Offer, error) {
	if _, err := s.findTask(ctx, taskID); err != nil {
		return nil, err
	}
	return s.offers.ListByTask(ctx, taskID)
}

func (s *OfferService) ListOffersByProvider(ctx context.Context, providerID string) ([]model.Offer, error) {
	if _, err := s.providers.FindByID(ctx, providerID); err != nil {
		return nil, translate(err, apperrors.ErrProviderNotFound, "find provider")
	}
	return s.offers.ListByProvider(ctx, providerID)
}

func (s *OfferService) findOffer(ctx context.Context, id string) (*model.Offer, error) {
	offer, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrOfferNotFound, "find offer")
	}
	return offer, nil
}

func (s *OfferService) findTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound, "find task")
	}
	return task, nil
}
