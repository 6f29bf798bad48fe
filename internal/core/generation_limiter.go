package core

// generation_limiter.go bounds concurrent AI text generations.
//
// Each generation holds one slot of a weighted semaphore for the duration of
// the remote call. When all slots are occupied, new requests wait up to
// maxWait before failing with ErrTooManyGenerations.
//
// WaitForDrain acquires every slot at once, so it returns only after all
// in-flight generations finish. Requests arriving during a drain queue
// behind it.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/semaphore"
)

// ErrTooManyGenerations is returned when all generation slots are occupied
// and the wait timeout expires. Clients should retry after a short delay.
var ErrTooManyGenerations = errors.New("too many generations in progress, please try again later")

// DefaultMaxConcurrentGenerations is the default limit for parallel generations.
const DefaultMaxConcurrentGenerations = 4

// DefaultGenerationWait is how long to wait for a slot before rejecting.
const DefaultGenerationWait = 10 * time.Second

// GenerationLimiter controls concurrent generation calls.
type GenerationLimiter struct {
	sem     *semaphore.Weighted
	size    int64
	maxWait time.Duration
	active  atomic.Int64
}

// NewGenerationLimiter creates a limiter that allows at most maxConcurrent
// simultaneous generations.
func NewGenerationLimiter(maxConcurrent int, maxWait time.Duration) *GenerationLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentGenerations
	}
	if maxWait <= 0 {
		maxWait = DefaultGenerationWait
	}
	return &GenerationLimiter{
		sem:     semaphore.NewWeighted(int64(maxConcurrent)),
		size:    int64(maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire waits for a slot. The caller must call Release when done.
// It returns ctx.Err() if ctx ends first and ErrTooManyGenerations if the
// wait timeout expires.
func (l *GenerationLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	if err := l.sem.Acquire(waitCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyGenerations
	}
	l.active.Add(1)
	return nil
}

// TryAcquire takes a slot without blocking.
func (l *GenerationLimiter) TryAcquire() bool {
	if !l.sem.TryAcquire(1) {
		return false
	}
	l.active.Add(1)
	return true
}

// Release returns a slot taken by Acquire or TryAcquire.
func (l *GenerationLimiter) Release() {
	l.active.Add(-1)
	l.sem.Release(1)
}

// ActiveCount returns the number of generations in flight.
func (l *GenerationLimiter) ActiveCount() int {
	return int(l.active.Load())
}

// MaxConcurrent returns the slot count.
func (l *GenerationLimiter) MaxConcurrent() int {
	return int(l.size)
}

// WaitForDrain blocks until no generation is in flight or ctx ends.
func (l *GenerationLimiter) WaitForDrain(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, l.size); err != nil {
		return err
	}
	l.sem.Release(l.size)
	return nil
}

// GenerationLimiterStatus is a point-in-time view of the limiter.
type GenerationLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state for monitoring.
func (l *GenerationLimiter) Status() GenerationLimiterStatus {
	active := l.ActiveCount()
	return GenerationLimiterStatus{
		Active:        active,
		Available:     int(l.size) - active,
		MaxConcurrent: int(l.size),
	}
}
