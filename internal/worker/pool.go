// Package worker provides the bounded fan-out used when computing many
// sources' statistics in parallel. Per-source computations are independent;
// the pool only bounds how many run at once.
package worker

import (
	"context"
	"sync"
)

// Task is one unit of CPU-bound work
type Task func(ctx context.Context)

// Pool executes tasks with a fixed number of workers
type Pool struct {
	workers int
}

// NewPool creates a pool with the given worker count
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all tasks and blocks until they finish or the context is
// cancelled. Tasks not yet started when the context ends are skipped.
func (p *Pool) Run(ctx context.Context, tasks []Task) {
	if len(tasks) == 0 {
		return
	}

	queue := make(chan Task)
	var wg sync.WaitGroup

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				select {
				case <-ctx.Done():
					return
				default:
				}
				task(ctx)
			}
		}()
	}

	for _, task := range tasks {
		select {
		case <-ctx.Done():
			close(queue)
			wg.Wait()
			return
		case queue <- task:
		}
	}
	close(queue)
	wg.Wait()
}
