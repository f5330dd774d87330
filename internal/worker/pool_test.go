package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunExecutesAllTasks(t *testing.T) {
	var ran int64
	tasks := make([]Task, 100)
	for i := range tasks {
		tasks[i] = func(context.Context) { atomic.AddInt64(&ran, 1) }
	}

	NewPool(4).Run(context.Background(), tasks)

	if got := atomic.LoadInt64(&ran); got != 100 {
		t.Errorf("ran %d tasks, want 100", got)
	}
}

func TestRunBoundsConcurrency(t *testing.T) {
	var (
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	tasks := make([]Task, 50)
	for i := range tasks {
		tasks[i] = func(context.Context) {
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}
	}

	NewPool(3).Run(context.Background(), tasks)

	if maxSeen > 3 {
		t.Errorf("observed %d concurrent tasks, want at most 3", maxSeen)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran int64
	tasks := make([]Task, 100)
	for i := range tasks {
		tasks[i] = func(context.Context) { atomic.AddInt64(&ran, 1) }
	}

	// Must return rather than hang, and skip (nearly) all work
	NewPool(2).Run(ctx, tasks)

	if got := atomic.LoadInt64(&ran); got == 100 {
		t.Error("all tasks ran despite a cancelled context")
	}
}

func TestRunEmptyAndZeroWorkers(t *testing.T) {
	NewPool(4).Run(context.Background(), nil)

	var ran int64
	NewPool(0).Run(context.Background(), []Task{
		func(context.Context) { atomic.AddInt64(&ran, 1) },
	})
	if ran != 1 {
		t.Errorf("zero-worker pool ran %d tasks, want 1 (clamped to one worker)", ran)
	}
}
