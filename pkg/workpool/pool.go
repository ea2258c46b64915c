// Package workpool bounds how much CPU-bound work runs at once.
package workpool

import (
	"context"
	"fmt"
	"runtime"
	"time"
)

// Option configures a Pool.
type Option func(*Config)

// Config holds pool configuration.
type Config struct {
	Size    int
	OnWait  func(wait time.Duration)
	OnPanic func(v any)
}

// WithSize sets how many jobs may run at once. Zero or less means runtime.NumCPU().
func WithSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Size = n
		}
	}
}

// WithWaitObserver is called with the time each job spent waiting for a slot.
func WithWaitObserver(fn func(wait time.Duration)) Option {
	return func(c *Config) { c.OnWait = fn }
}

// WithPanicHandler is called with the recovered value when a job panics.
func WithPanicHandler(fn func(v any)) Option {
	return func(c *Config) { c.OnPanic = fn }
}

// Pool runs jobs on their own goroutines, at most Size at a time.
type Pool struct {
	cfg Config
	sem chan struct{}
}

// New creates a pool.
func New(opts ...Option) *Pool {
	cfg := Config{Size: runtime.NumCPU()}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Pool{cfg: cfg, sem: make(chan struct{}, cfg.Size)}
}

// Size returns the concurrency bound.
func (p *Pool) Size() int { return p.cfg.Size }

// Do waits for a free slot and runs fn. Waiting honours ctx; once fn has started it
// runs to completion even if ctx is cancelled, in which case Do returns ctx.Err()
// and the result of fn is discarded.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	start := time.Now()
	select {
	case p.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	if p.cfg.OnWait != nil {
		p.cfg.OnWait(time.Since(start))
	}

	done := make(chan error, 1)
	go func() {
		defer func() { <-p.sem }()
		defer func() {
			if r := recover(); r != nil {
				if p.cfg.OnPanic != nil {
					p.cfg.OnPanic(r)
				}
				done <- fmt.Errorf("workpool: job panicked: %v", r)
			}
		}()
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Submit runs fn on p and returns its value.
func Submit[T any](ctx context.Context, p *Pool, fn func() (T, error)) (T, error) {
	var out T
	err := p.Do(ctx, func() error {
		v, err := fn()
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
