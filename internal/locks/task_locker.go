package locks

import (
	"context"
	"errors"
)

// TaskLocker serialises work on a single task across requests. Acquire
// returns a token that must be handed back to Release.
type TaskLocker interface {
	Acquire(ctx context.Context, taskID string) (string, error)

	Release(ctx context.Context, taskID, token string) error
}

var (
	ErrLockNotAcquired = errors.New("task lock not acquired")
	ErrLockNotHeld     = errors.New("task lock not held by token")
)
