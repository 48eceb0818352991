package locks

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type heldLock struct {
	sem     chan struct{}
	token   string
	waiters int
}

// MemoryTaskLocker is the single-process TaskLocker used when redis is
// disabled.
type MemoryTaskLocker struct {
	mu    sync.Mutex
	locks map[string]*heldLock
}

func NewMemoryTaskLocker() *MemoryTaskLocker {
	return &MemoryTaskLocker{locks: make(map[string]*heldLock)}
}

func (m *MemoryTaskLocker) Acquire(ctx context.Context, taskID string) (string, error) {
	m.mu.Lock()
	l, ok := m.locks[taskID]
	if !ok {
		l = &heldLock{sem: make(chan struct{}, 1)}
		m.locks[taskID] = l
	}
	l.waiters++
	m.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		m.mu.Lock()
		m.forget(taskID, l)
		m.mu.Unlock()
		return "", ErrLockNotAcquired
	}

	token := uuid.NewString()

	m.mu.Lock()
	l.token = token
	m.mu.Unlock()

	return token, nil
}

func (m *MemoryTaskLocker) Release(_ context.Context, taskID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[taskID]
	if !ok || l.token != token || token == "" {
		return ErrLockNotHeld
	}

	l.token = ""
	<-l.sem
	m.forget(taskID, l)
	return nil
}

// forget drops the entry once nobody holds or waits for it. Callers hold mu.
func (m *MemoryTaskLocker) forget(taskID string, l *heldLock) {
	l.waiters--
	if l.waiters == 0 {
		delete(m.locks, taskID)
	}
}
