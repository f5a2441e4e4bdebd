// Package workerpool runs bounded concurrent work that stops at the first failure.
package workerpool

import (
	"context"
	"sync"
)

// Process calls process for every item using at most workerCount goroutines. The first error
// cancels the context handed to the remaining calls and is returned. A canceled parent context
// returns its error.
func Process[T any](
	ctx context.Context,
	workerCount int,
	items []T,
	process func(context.Context, T) error,
) error {
	if len(items) == 0 {
		return ctx.Err()
	}
	workerCount = max(1, min(workerCount, len(items)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan T)
	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	for range workerCount {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if ctx.Err() != nil {
					continue
				}
				if err := process(ctx, item); err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
				}
			}
		}()
	}

feed:
	for _, item := range items {
		select {
		case <-ctx.Done():
			break feed
		case tasks <- item:
		}
	}
	close(tasks)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}

// ProcessIndexes runs process for every index in [0, n). Callers write results into a slice
// at the given index, which keeps output order independent of scheduling.
func ProcessIndexes(ctx context.Context, workerCount, n int, process func(context.Context, int) error) error {
	indexes := make([]int, n)
	for i := range indexes {
		indexes[i] = i
	}
	return Process(ctx, workerCount, indexes, process)
}
