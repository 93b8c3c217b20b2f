// Package retrylimit paces calls to a rate limited API and retries transient
// failures with exponential backoff. The pace adapts: it slows down when the
// API reports throttling and recovers after successful calls.
//
// Example usage:
//
//	lim := retrylimit.NewLimiter(5, 1, 20)
//	err := retrylimit.Do(ctx, lim, retrylimit.Policy{Classify: classify}, func() error {
//	    return doSomeWork()
//	})
package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Limiter is a token bucket whose rate moves between min and max.
type Limiter struct {
	mu           sync.Mutex
	limiter      *rate.Limiter
	min          rate.Limit
	max          rate.Limit
	lastThrottle time.Time
}

// NewLimiter returns a limiter starting at initial calls per second.
func NewLimiter(initial, min, max rate.Limit) *Limiter {
	if min <= 0 {
		min = 0.1
	}
	if max < min {
		max = min
	}
	initial = clamp(initial, min, max)
	return &Limiter{
		limiter: rate.NewLimiter(initial, 1),
		min:     min,
		max:     max,
	}
}

// Wait blocks until a call may be made or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Limit returns the current calls per second.
func (l *Limiter) Limit() rate.Limit {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.limiter.Limit()
}

// success speeds up by one call per second, unless throttling was seen in
// the last ten seconds.
func (l *Limiter) success() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Since(l.lastThrottle) > 10*time.Second {
		l.limiter.SetLimit(clamp(l.limiter.Limit()+1, l.min, l.max))
	}
}

// throttled halves the rate.
func (l *Limiter) throttled() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastThrottle = time.Now()
	l.limiter.SetLimit(clamp(l.limiter.Limit()/2, l.min, l.max))
}

func clamp(v, min, max rate.Limit) rate.Limit {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Outcome classifies a failed call.
type Outcome int

const (
	// Fatal errors are returned at once.
	Fatal Outcome = iota
	// Transient errors are retried after a backoff delay.
	Transient
	// Throttled errors are retried and slow the limiter down.
	Throttled
)

// ErrAttemptsExhausted is wrapped around the last error when every attempt failed.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// Policy configures Do. Zero fields select the defaults.
type Policy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// Classify decides how a failure is handled; nil treats every error as fatal.
	Classify func(error) Outcome
	Logger   *zap.Logger
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = 5
	}
	if p.InitialDelay <= 0 {
		p.InitialDelay = 500 * time.Millisecond
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = 10 * time.Second
	}
	if p.Classify == nil {
		p.Classify = func(error) Outcome { return Fatal }
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return p
}

// Do calls fn until it succeeds, returns a fatal error, the attempts run out
// or ctx is done. Every attempt first waits for lim, which may be nil.
func Do(ctx context.Context, lim *Limiter, p Policy, fn func() error) error {
	p = p.withDefaults()
	delay := p.InitialDelay

	var err error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if lim != nil {
			if werr := lim.Wait(ctx); werr != nil {
				return werr
			}
		}

		if err = fn(); err == nil {
			if lim != nil {
				lim.success()
			}
			return nil
		}

		outcome := p.Classify(err)
		if outcome == Fatal {
			return err
		}
		if outcome == Throttled && lim != nil {
			lim.throttled()
		}
		if attempt == p.MaxAttempts {
			break
		}

		wait := jitter(delay)
		p.Logger.Warn("Call failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, p.MaxAttempts, err)
}

// jitter adds up to 25% to d.
func jitter(d time.Duration) time.Duration {
	if d < 4 {
		return d
	}
	return d + time.Duration(rand.Int63n(int64(d/4)))
}
