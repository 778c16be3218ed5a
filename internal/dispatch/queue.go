package dispatch

import (
	"context"
)

// Task is a unit of work run by the queue.
type Task func(ctx context.Context)

// Queue runs tasks sequentially with a pacer between them.
// Concurrent runs wait their turn; tasks from different runs never overlap.
type Queue struct {
	pacer Pacer

	// slot is held by the run in progress. ran is only touched by its holder.
	slot chan struct{}
	ran  bool
}

// NewQueue creates a queue. A nil pacer runs tasks back to back.
func NewQueue(pacer Pacer) *Queue {
	if pacer == nil {
		pacer = NewFixedDelay(0)
	}
	return &Queue{pacer: pacer, slot: make(chan struct{}, 1)}
}

// Pacer returns the queue's pacer.
func (q *Queue) Pacer() Pacer {
	return q.pacer
}

// Run executes tasks in order and returns how many were started.
//
// If another run is in progress Run waits for it to finish. The pacer is
// awaited between tasks, including between the last task of one run and
// the first of the next, but never before the queue's very first task.
// When ctx is cancelled Run stops before starting the next task and returns
// the context error; tasks from index started onwards were not run.
func (q *Queue) Run(ctx context.Context, tasks []Task) (started int, err error) {
	select {
	case q.slot <- struct{}{}:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	defer func() { <-q.slot }()

	for i, task := range tasks {
		if q.ran {
			if err := q.pacer.Wait(ctx); err != nil {
				return i, err
			}
		}
		if err := ctx.Err(); err != nil {
			return i, err
		}
		q.ran = true
		task(ctx)
	}

	return len(tasks), nil
}
