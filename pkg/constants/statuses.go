package constants

type TaskStatus string

const (
	TaskStatusOpen              TaskStatus = "OPEN"
	TaskStatusAccepted          TaskStatus = "ACCEPTED"
	TaskStatusInProgress        TaskStatus = "IN_PROGRESS"
	TaskStatusProviderCompleted TaskStatus = "PROVIDER_COMPLETED"
	TaskStatusCompleted         TaskStatus = "TASK_COMPLETED"
)

// Active reports whether the assigned provider may still work on the task.
// ACCEPTED only appears on rows written before offer acceptance moved tasks
// straight to IN_PROGRESS.
func (s TaskStatus) Active() bool {
	return s == TaskStatusAccepted || s == TaskStatusInProgress
}

type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "PENDING"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusRejected OfferStatus = "REJECTED"
)

type ProgressStatus string

const (
	ProgressStatusInProgress ProgressStatus = "IN_PROGRESS"
)
