package eventqueue

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_RunsTasksInOrder(t *testing.T) {
	queue := New()

	var order []int
	for i := range 20 {
		queue.Submit("append", func(ctx context.Context) {
			order = append(order, i)
		})
	}
	queue.Stop()

	expected := make([]int, 20)
	for i := range expected {
		expected[i] = i
	}
	assert.Equal(t, expected, order)
	assert.True(t, queue.Stopped())
}

func TestQueue_NoOverlap(t *testing.T) {
	queue := New()

	var running, maxRunning int32
	for range 50 {
		queue.Submit("overlap", func(ctx context.Context) {
			current := atomic.AddInt32(&running, 1)
			if current > atomic.LoadInt32(&maxRunning) {
				atomic.StoreInt32(&maxRunning, current)
			}
			atomic.AddInt32(&running, -1)
		})
	}
	queue.Stop()

	assert.Equal(t, int32(1), maxRunning)
}

func TestQueue_SubmitWait(t *testing.T) {
	queue := New()
	defer queue.Stop()

	done := false
	queue.SubmitWait("wait", func(ctx context.Context) {
		done = true
	})

	assert.True(t, done)
}

func TestQueue_PanicDoesNotKillWorker(t *testing.T) {
	queue := New()

	queue.Submit("boom", func(ctx context.Context) {
		panic("boom")
	})

	ran := false
	queue.SubmitWait("after", func(ctx context.Context) {
		ran = true
	})
	queue.Stop()

	assert.True(t, ran)
}

func TestQueue_ContextCancelledAfterStop(t *testing.T) {
	queue := New()

	var taskCtx context.Context
	queue.SubmitWait("capture", func(ctx context.Context) {
		taskCtx = ctx
	})
	assert.NoError(t, taskCtx.Err())

	queue.Stop()
	assert.ErrorIs(t, taskCtx.Err(), context.Canceled)
}

func TestQueue_SubmitAfterStopIsDropped(t *testing.T) {
	queue := New()
	queue.Stop()

	ran := false
	assert.False(t, queue.Submit("late", func(context.Context) { ran = true }))
	assert.False(t, queue.SubmitWait("late", func(context.Context) { ran = true }))
	assert.False(t, ran)
	assert.True(t, queue.Stopped())
}

func TestQueue_StopRacingSubmitters(t *testing.T) {
	queue := New()

	var accepted, ran atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				ok := queue.Submit("burst", func(context.Context) { ran.Add(1) })
				if !ok {
					return
				}
				accepted.Add(1)
			}
		}()
	}

	for accepted.Load() < 100 {
		runtime.Gosched()
	}
	queue.Stop()
	wg.Wait()

	assert.True(t, queue.Stopped())
	assert.Equal(t, accepted.Load(), ran.Load())
	assert.False(t, queue.Submit("late", func(context.Context) {}))
}

func TestQueue_StopTwice(t *testing.T) {
	queue := New()
	queue.Stop()

	assert.NotPanics(t, queue.Stop)
}
