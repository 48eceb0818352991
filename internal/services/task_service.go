package services

import (
	"context"
	"fmt"
	"time"

	apperrors "skill-market.com/skill-market/internal/errors"
	repository "skill-market.com/skill-market/internal/repositories"
	"skill-market.com/skill-market/pkg/constants"
	model "skill-market.com/skill-market/pkg/models"
)

type TaskService struct {
	repo   *repository.TaskRepository
	events EventPublisher
}

func NewTaskService(repo *repository.TaskRepository, events EventPublisher) *TaskService {
	return &TaskService{
		repo:   repo,
		events: events,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, in TaskInput, ownerID string) (*model.Task, error) {
	task := &model.Task{UserID: ownerID}
	applyTaskInput(task, in)

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	s.events.Publish(ctx, newEvent(constants.EventTaskCreated, task, nil, ownerID))
	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID, callerID string, in TaskInput) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := requireTaskOwner(task, callerID); err != nil {
		return nil, err
	}

	if task.Status != constants.TaskStatusOpen {
		return nil, apperrors.ErrTaskNotOpen
	}

	applyTaskInput(task, in)

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound, "update task")
	}

	s.events.Publish(ctx, newEvent(constants.EventTaskUpdated, task, nil, callerID))
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID, callerID string) error {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return err
	}

	if err := requireTaskOwner(task, callerID); err != nil {
		return err
	}

	if task.Status != constants.TaskStatusOpen {
		return apperrors.ErrTaskNotOpen
	}

	if err := s.repo.Delete(ctx, task); err != nil {
		return translate(err, apperrors.ErrTaskNotFound, "delete task")
	}

	s.events.Publish(ctx, newEvent(constants.EventTaskDeleted, task, nil, callerID))
	return nil
}

// RecordProgress appends a progress entry and moves the task to IN_PROGRESS.
func (s *TaskService) RecordProgress(ctx context.Context, taskID, providerID string, in ProgressInput) (*model.TaskProgress, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := requireAssignedProvider(task, providerID); err != nil {
		return nil, err
	}

	if !task.Status.Active() {
		return nil, apperrors.ErrTaskNotActive
	}

	entry := &model.TaskProgress{
		ProviderID:  providerID,
		Description: in.Description,
		HoursSpent:  in.HoursSpent,
	}

	if err := s.repo.AppendProgress(ctx, task, entry); err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound, "record progress")
	}

	s.events.Publish(ctx, newEvent(constants.EventProgressRecorded, task, nil, providerID))
	return entry, nil
}

func (s *TaskService) MarkProviderCompleted(ctx context.Context, taskID, providerID string) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := requireAssignedProvider(task, providerID); err != nil {
		return nil, err
	}

	if !task.Status.Active() {
		return nil, apperrors.ErrTaskNotActive
	}

	task.Status = constants.TaskStatusProviderCompleted

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound, "mark provider completed")
	}

	s.events.Publish(ctx, newEvent(constants.EventProviderCompleted, task, nil, providerID))
	return task, nil
}

func (s *TaskService) AcceptCompletion(ctx context.Context, taskID, ownerID string) (*model.Task, error) {
	task, err := s.awaitingApproval(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now().UTC()
	task.Status = constants.TaskStatusCompleted
	task.CompletedAt = &completedAt

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound, "accept completion")
	}

	s.events.Publish(ctx, newEvent(constants.EventCompletionAccepted, task, nil, ownerID))
	return task, nil
}

func (s *TaskService) RejectCompletion(ctx context.Context, taskID, ownerID string) (*model.Task, error) {
	task, err := s.awaitingApproval(ctx, taskID, ownerID)
	if err != nil {
		return nil, err
	}

	task.Status = constants.TaskStatusInProgress
	task.CompletedAt = nil

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound, "reject completion")
	}

	s.events.Publish(ctx, newEvent(constants.EventCompletionRejected, task, nil, ownerID))
	return task, nil
}

func (s *TaskService) awaitingApproval(ctx context.Context, taskID, ownerID string) (*model.Task, error) {
	task, err := s.findTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if err := requireTaskOwner(task, ownerID); err != nil {
		return nil, err
	}

	if task.Status != constants.TaskStatusProviderCompleted {
		return nil, apperrors.ErrTaskNotAwaitingApproval
	}

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	return s.findTask(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) ListTasksByUser(ctx context.Context, userID string) ([]model.Task, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *TaskService) ListTasksByProvider(ctx context.Context, providerID string) ([]model.Task, error) {
	return s.repo.ListByProvider(ctx, providerID)
}

func (s *TaskService) ListProgress(ctx context.Context, taskID string) ([]model.TaskProgress, error) {
	if _, err := s.findTask(ctx, taskID); err != nil {
		return nil, err
	}
	return s.repo.ListProgress(ctx, taskID)
}

func (s *TaskService) findTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, apperrors.ErrTaskNotFound, "find task")
	}
	return task, nil
}

func applyTaskInput(task *model.Task, in TaskInput) {
	task.Name = in.Name
	task.Category = in.Category
	task.Description = in.Description
	task.ExpectedStartDate = in.ExpectedStartDate
	task.ExpectedHours = in.ExpectedHours
	task.HourlyRate = in.HourlyRate
	task.Currency = in.Currency
}
