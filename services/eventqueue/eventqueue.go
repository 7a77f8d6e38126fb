package eventqueue

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/workerpool"

	"rolebot/core"
	"rolebot/core/log"
)

// Task is one unit of serialized work
type Task func(ctx context.Context)

// Queue runs every submitted task on a single worker, in submission order.
// State owned by tasks needs no locking as long as it is only touched from tasks.
type Queue struct {
	workerPool *workerpool.WorkerPool
	ctx        context.Context
	cancel     context.CancelFunc

	// mu is held across the stopped check and the hand-off to the pool,
	// so Stop never closes the pool under a concurrent submitter
	mu      sync.Mutex
	stopped bool
}

// New creates a queue with one worker
func New() *Queue {
	ctx, cancel := context.WithCancel(context.Background())
	return &Queue{
		workerPool: workerpool.New(1), // Sequential processing
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Submit enqueues a task without waiting for it. Tasks submitted after
// Stop are dropped and false is returned.
func (q *Queue) Submit(name string, task Task) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.stopped {
		log.Warn("⚠️ Dropping task, queue is stopped", "task", name)
		return false
	}
	taskID := core.NewID("evt")
	q.workerPool.Submit(func() {
		q.run(taskID, name, task)
	})
	return true
}

// SubmitWait enqueues a task and blocks until it has run
func (q *Queue) SubmitWait(name string, task Task) bool {
	done := make(chan struct{})
	if !q.Submit(name, func(ctx context.Context) {
		defer close(done)
		task(ctx)
	}) {
		return false
	}
	<-done
	return true
}

// Stop waits for queued tasks to finish, then cancels the task context.
// Calling it more than once is a no-op.
func (q *Queue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		return
	}
	q.stopped = true
	q.mu.Unlock()

	q.workerPool.StopWait()
	q.cancel()
}

// Stopped reports whether Stop has been called
func (q *Queue) Stopped() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.stopped
}

func (q *Queue) run(taskID, name string, task Task) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.Error("❌ Task panicked", "task", name, "task_id", taskID, "panic", fmt.Sprint(r))
		}
	}()

	log.Debug("📋 Starting task", "task", name, "task_id", taskID)
	task(q.ctx)
	log.Debug("📋 Completed task", "task", name, "task_id", taskID, "duration", time.Since(start))
}
