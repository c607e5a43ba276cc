package store

import (
	"context"
	"sync"

	"github.com/jmoiron/sqlx"
)

// job is one queued unit of work.
type job struct {
	id   string
	ctx  context.Context
	run  func(ctx context.Context, tx *sqlx.Tx) error
	done func(err error)
}

// queue is an unbounded FIFO so that submitting work never blocks the caller.
type queue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []job
	closed bool
}

func newQueue() *queue {
	q := &queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// push appends j. It returns false once the queue is closed.
func (q *queue) push(j job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.items = append(q.items, j)
	q.cond.Signal()
	return true
}

// pop blocks until a job is available. It returns false when the queue is closed and empty.
func (q *queue) pop() (job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return job{}, false
	}

	j := q.items[0]
	q.items[0] = job{}
	q.items = q.items[1:]
	return j, true
}

// close stops new submissions. Jobs already queued are still handed out by pop.
func (q *queue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.cond.Broadcast()
}
