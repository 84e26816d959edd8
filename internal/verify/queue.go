package verify

import (
	"context"
	"sync"

	"github.com/hearsay-live/hearsay/internal/model"
)

// Queue holds pending verification work items. Ordinary items append at
// the back; urgent items go to the front. Pushing an item for a claim
// that is already queued replaces the old entry, so a claim never waits
// in line twice.
type Queue struct {
	mu    sync.Mutex
	items []*model.QueuedVerification
	wake  chan struct{}
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

// Push enqueues a work item, replacing any queued entry for the same
// claim id.
func (q *Queue) Push(item *model.QueuedVerification) {
	q.mu.Lock()
	for i, existing := range q.items {
		if existing.ID == item.ID {
			q.items = append(q.items[:i], q.items[i+1:]...)
			break
		}
	}
	if item.Urgent {
		q.items = append([]*model.QueuedVerification{item}, q.items...)
	} else {
		q.items = append(q.items, item)
	}
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Pop blocks until an item is available or the context ends.
func (q *Queue) Pop(ctx context.Context) (*model.QueuedVerification, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			item := q.items[0]
			q.items = q.items[1:]
			q.mu.Unlock()
			return item, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-q.wake:
		}
	}
}

// Len reports the number of queued items.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
