package retrylimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

var errBusy = errors.New("busy")

func fastPolicy(classify func(error) Outcome) Policy {
	return Policy{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Classify:     classify,
	}
}

func TestDoRetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Do(context.Background(), nil, fastPolicy(func(error) Outcome { return Transient }), func() error {
		calls++
		if calls < 3 {
			return errBusy
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnFatal(t *testing.T) {
	calls := 0
	err := Do(context.Background(), nil, fastPolicy(nil), func() error {
		calls++
		return errBusy
	})
	assert.ErrorIs(t, err, errBusy)
	assert.NotErrorIs(t, err, ErrAttemptsExhausted)
	assert.Equal(t, 1, calls)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), nil, fastPolicy(func(error) Outcome { return Transient }), func() error {
		calls++
		return errBusy
	})
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.ErrorIs(t, err, errBusy)
	assert.Equal(t, 3, calls)
}

func TestDoHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := fastPolicy(func(error) Outcome { return Transient })
	p.InitialDelay = time.Hour

	err := Do(ctx, nil, p, func() error {
		cancel()
		return errBusy
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestThrottlingSlowsLimiter(t *testing.T) {
	lim := NewLimiter(100, 10, 100)
	calls := 0
	err := Do(context.Background(), lim, fastPolicy(func(error) Outcome { return Throttled }), func() error {
		calls++
		if calls == 1 {
			return errBusy
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, rate.Limit(50), lim.Limit(), "halved, and no speed-up right after throttling")
}

func TestLimiterBounds(t *testing.T) {
	lim := NewLimiter(50, 5, 20)
	assert.Equal(t, rate.Limit(20), lim.Limit())

	for i := 0; i < 5; i++ {
		lim.throttled()
	}
	assert.Equal(t, rate.Limit(5), lim.Limit())
}
