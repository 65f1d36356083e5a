package services

import (
	"context"
	"errors"
	"sync"

	"notify-center-api/models"
)

var ErrNilTriggerCall = errors.New("trigger call is nil")

// NotificationQueue is an unbounded FIFO of pending trigger calls shared
// between the webhook (producer) and the dispatcher loop (consumer).
// Enqueue never blocks; Dequeue blocks without polling until an item is
// available or the context is cancelled.
type NotificationQueue struct {
	mu    sync.Mutex
	calls []*models.TriggerCall

	// wakeup carries at most one pending signal; Dequeue rechecks the
	// slice after every receive, so a coalesced signal is never lost.
	wakeup chan struct{}
}

func NewNotificationQueue() *NotificationQueue {
	return &NotificationQueue{
		wakeup: make(chan struct{}, 1),
	}
}

// Enqueue appends a trigger call to the tail of the queue.
func (q *NotificationQueue) Enqueue(call *models.TriggerCall) error {
	if call == nil {
		return ErrNilTriggerCall
	}

	q.mu.Lock()
	q.calls = append(q.calls, call)
	q.mu.Unlock()

	select {
	case q.wakeup <- struct{}{}:
	default:
	}
	return nil
}

// Dequeue removes and returns the oldest queued call. It waits until a call
// is available or ctx is cancelled, in which case it returns ctx.Err().
func (q *NotificationQueue) Dequeue(ctx context.Context) (*models.TriggerCall, error) {
	for {
		q.mu.Lock()
		if len(q.calls) > 0 {
			call := q.calls[0]
			q.calls = q.calls[1:]
			q.mu.Unlock()
			return call, nil
		}
		q.mu.Unlock()

		select {
		case <-q.wakeup:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Len returns the number of calls currently waiting.
func (q *NotificationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.calls)
}
