// Package parallel runs independent work items on a bounded pool of goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Upper bound on concurrent goroutines.
}

// DefaultConfig returns defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// WithWorkers returns a config running at most n items at once.
// n <= 0 selects DefaultConfig; n == 1 runs sequentially.
func WithWorkers(n int) Config {
	if n <= 0 {
		return DefaultConfig()
	}
	return Config{Enabled: n > 1, NumWorkers: n}
}

// ForEach executes f(ctx, i) for i in [0, n) on at most cfg.NumWorkers
// goroutines. The first error cancels the context passed to the remaining
// calls and is returned once every started call has finished. Items not yet
// started when the context is done are skipped.
func ForEach(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := min(cfg.NumWorkers, n)
	if !cfg.Enabled || workers <= 1 {
		// Sequential fallback.
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	next := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				if err := f(ctx, i); err != nil {
					once.Do(func() {
						firstErr = err
						cancel()
					})
				}
			}
		}()
	}

feed:
	for i := 0; i < n; i++ {
		select {
		case next <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(next)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
