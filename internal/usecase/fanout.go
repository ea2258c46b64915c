package usecase

import (
	"context"
	"fmt"
	"sync"

	enginemetrics "StockSense/internal/service/metrics"
)

// Result is the outcome of one fan-out task.
type Result[T any] struct {
	Key   string
	Value T
	Err   error
}

// Fanout runs op for every key concurrently and waits for all of them. Results
// come back in key order; one failure never cancels its siblings. A panicking op
// is reported as that key's error.
func Fanout[T any](ctx context.Context, keys []string, op func(ctx context.Context, key string) (T, error)) []Result[T] {
	out := make([]Result[T], len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					out[i] = Result[T]{Key: key, Err: fmt.Errorf("fanout %s: panic: %v", key, r)}
				}
			}()
			v, err := op(ctx, key)
			out[i] = Result[T]{Key: key, Value: v, Err: err}
		}(i, key)
	}
	wg.Wait()

	failed := len(Failures(out))
	enginemetrics.FanoutSize.WithLabelValues("ok").Observe(float64(len(out) - failed))
	enginemetrics.FanoutSize.WithLabelValues("failed").Observe(float64(failed))
	return out
}

// Successes keeps the values of results without an error, in order.
func Successes[T any](results []Result[T]) []T {
	out := make([]T, 0, len(results))
	for _, r := range results {
		if r.Err == nil {
			out = append(out, r.Value)
		}
	}
	return out
}

// Failures keeps the results that carry an error.
func Failures[T any](results []Result[T]) []Result[T] {
	var out []Result[T]
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r)
		}
	}
	return out
}
