// Package workers provides a bounded worker pool for per-key fan-out.
// Each trend computation touches a disjoint (key, date) row, so keys can be
// processed concurrently as long as every upsert stays a single statement.
package workers

import (
	"context"
	"sync"
)

// Pool manages a fixed number of worker goroutines
type Pool struct {
	numWorkers int
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = 8
	}
	return &Pool{numWorkers: numWorkers}
}

// Size returns the configured worker count
func (p *Pool) Size() int {
	return p.numWorkers
}

// ForEach runs fn once per key across the pool and waits for completion.
// The first error encountered is returned; once an error or a context
// cancellation occurs, queued keys are skipped. In-flight keys run to
// completion so no upsert is torn mid-statement.
func (p *Pool) ForEach(ctx context.Context, keys []string, fn func(key string) error) error {
	if len(keys) == 0 {
		return nil
	}

	numWorkers := p.numWorkers
	if len(keys) < numWorkers {
		numWorkers = len(keys)
	}

	jobs := make(chan string, len(keys))
	for _, key := range keys {
		jobs <- key
	}
	close(jobs)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	failed := func() bool {
		mu.Lock()
		defer mu.Unlock()
		return firstErr != nil
	}

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for key := range jobs {
				if failed() {
					continue
				}
				select {
				case <-ctx.Done():
					setErr(ctx.Err())
					continue
				default:
				}
				if err := fn(key); err != nil {
					setErr(err)
				}
			}
		}()
	}

	wg.Wait()
	return firstErr
}
