package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"skill-market.com/skill-market/internal/events"
	"skill-market.com/skill-market/internal/metrics"
	repository "skill-market.com/skill-market/internal/repositories"
	"skill-market.com/skill-market/pkg/constants"
	model "skill-market.com/skill-market/pkg/models"
)

const sendTimeout = 10 * time.Second

// EventPublisher records a lifecycle transition. Publishing never fails the
// caller: events that cannot be queued stay in the outbox for redelivery.
type EventPublisher interface {
	Publish(ctx context.Context, event *model.LifecycleEvent)
}

type EventPool struct {
	queue     chan string
	wg        sync.WaitGroup
	enqueued  sync.Map
	repo      *repository.EventRepository
	sink      events.Sink
	scheduler *cron.Cron
	batchSize int

	mu     sync.RWMutex
	closed bool
}

// NewEventPool starts the delivery workers and, when redeliveryInterval is
// positive, the cron job that re-enqueues undelivered events.
func NewEventPool(
	repo *repository.EventRepository,
	sink events.Sink,
	workers int,
	queueSize int,
	redeliveryInterval time.Duration,
	batchSize int,
) (*EventPool, error) {
	p := &EventPool{
		queue:     make(chan string, queueSize),
		repo:      repo,
		sink:      sink,
		scheduler: cron.New(cron.WithLocation(time.UTC), cron.WithSeconds()),
		batchSize: batchSize,
	}

	if redeliveryInterval > 0 {
		seconds := int(redeliveryInterval.Seconds())
		if seconds <= 0 {
			seconds = 1
		}
		if _, err := p.scheduler.AddFunc(fmt.Sprintf("@every %ds", seconds), p.redeliverOnce); err != nil {
			return nil, err
		}
	}

	for i := 1; i <= workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	p.scheduler.Start()
	return p, nil
}

func (p *EventPool) Publish(ctx context.Context, event *model.LifecycleEvent) {
	if err := p.repo.Create(context.WithoutCancel(ctx), event); err != nil {
		log.Printf("event pool: failed to store %s for task %s: %v", event.Kind, event.TaskID, err)
		return
	}

	metrics.Transitions.WithLabelValues(string(event.Kind)).Inc()

	if ok, _ := p.enqueueIfNotPresent(event.ID); !ok {
		log.Printf("event pool: event %s left for redelivery", event.ID)
	}
}

func (p *EventPool) worker(workerID int) {
	defer p.wg.Done()

	log.Printf("event worker %d started", workerID)

	for eventID := range p.queue {
		metrics.EventQueueDepth.Set(float64(len(p.queue)))
		p.deliver(workerID, eventID)
	}

	log.Printf("event worker %d stopped", workerID)
}

func (p *EventPool) deliver(workerID int, eventID string) {
	defer p.untrackEnqueued(eventID)

	ctx := context.Background()

	event, err := p.repo.FindByID(ctx, eventID)
	if err != nil {
		log.Printf("event worker %d: event %s not found", workerID, eventID)
		return
	}

	if event.DeliveredAt != nil {
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := p.sink.Send(sendCtx, *event); err != nil {
		metrics.EventDeliveries.WithLabelValues("failed").Inc()
		log.Printf("event worker %d: failed to deliver event %s: %v", workerID, eventID, err)

		if err := p.repo.IncrementAttempts(ctx, event); err != nil {
			log.Printf("event worker %d: failed to record attempt for event %s: %v", workerID, eventID, err)
		}
		return
	}

	if err := p.repo.MarkDelivered(ctx, event); err != nil {
		log.Printf("event worker %d: failed to mark event %s delivered: %v", workerID, eventID, err)
		return
	}

	metrics.EventDeliveries.WithLabelValues("delivered").Inc()
}

func (p *EventPool) redeliverOnce() {
	ctx := context.Background()

	pending, err := p.repo.ListUndelivered(ctx, p.batchSize)
	if err != nil {
		log.Printf("event pool: failed to list undelivered events: %v", err)
		return
	}

	for _, event := range pending {
		if _, queueFull := p.enqueueIfNotPresent(event.ID); queueFull {
			return
		}
	}
}

func (p *EventPool) enqueueIfNotPresent(eventID string) (bool, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return false, false
	}

	if !p.trackEnqueued(eventID) {
		return false, false
	}

	select {
	case p.queue <- eventID:
		metrics.EventQueueDepth.Set(float64(len(p.queue)))
		return true, false
	default:
		p.untrackEnqueued(eventID)
		return false, true
	}
}

func (p *EventPool) trackEnqueued(eventID string) bool {
	_, loaded := p.enqueued.LoadOrStore(eventID, struct{}{})
	return !loaded
}

func (p *EventPool) untrackEnqueued(eventID string) {
	p.enqueued.Delete(eventID)
}

// Shutdown stops redelivery, drains queued events and closes the sink.
func (p *EventPool) Shutdown(ctx context.Context) {
	cronCtx := p.scheduler.Stop()
	select {
	case <-cronCtx.Done():
	case <-ctx.Done():
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("event pool shut down cleanly")
	case <-ctx.Done():
		log.Println("event pool shutdown timed out")
	}

	if err := p.sink.Close(); err != nil {
		log.Printf("event pool: failed to close sink: %v", err)
	}
}

func newEvent(kind constants.EventKind, task *model.Task, offerID *string, actorID string) *model.LifecycleEvent {
	return &model.LifecycleEvent{
		Kind:       kind,
		TaskID:     task.ID,
		OfferID:    offerID,
		ActorID:    actorID,
		TaskStatus: task.Status,
	}
}
