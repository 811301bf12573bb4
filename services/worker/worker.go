package worker

import (
	"context"
	"log"
	"sync"
)

// Task is a unit of detached work. A returned error is logged, never
// propagated: by the time a task runs, the request that queued it has
// already answered the user.
type Task func(ctx context.Context) error

type queued struct {
	name string
	task Task
}

// Worker drains a bounded queue of background tasks with a fixed pool of
// goroutines. Panel edits, notification fan-out and archival go through
// here so mutating operations can return as soon as the state change has
// landed.
type Worker struct {
	tasks  chan queued
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New starts a worker pool. buffer bounds the queue, workers the number of
// draining goroutines.
func New(buffer int, workers int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		tasks:  make(chan queued, buffer),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < workers; i++ {
		w.wg.Add(1)
		go w.drain()
	}
	return w
}

func (w *Worker) drain() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			// Run what is already queued, then exit.
			for {
				select {
				case q := <-w.tasks:
					w.run(q)
				default:
					return
				}
			}
		case q := <-w.tasks:
			w.run(q)
		}
	}
}

func (w *Worker) run(q queued) {
	if err := q.task(context.Background()); err != nil {
		log.Printf("[WORKER] task %s failed: %v", q.name, err)
	}
}

// Submit queues a task, blocking while the queue is full. After Shutdown the
// task is dropped and logged.
func (w *Worker) Submit(name string, task Task) {
	select {
	case <-w.ctx.Done():
		log.Printf("[WORKER] dropped task %s: worker shut down", name)
	case w.tasks <- queued{name: name, task: task}:
	}
}

// Shutdown stops intake and waits for already queued tasks to finish.
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}
