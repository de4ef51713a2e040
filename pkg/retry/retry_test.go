package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	errs "xplore/pkg/errors"
	"xplore/pkg/logger"
)

func testConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     DefaultRetryIf,
		Context:     context.Background(),
		Logger:      logger.NewTestLogger(),
	}
}

func TestDoSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := Do(func() error {
		calls++
		return nil
	}, testConfig())

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRetriesTransientErrors(t *testing.T) {
	calls := 0
	err := Do(func() error {
		calls++
		if calls < 3 {
			return errs.New(errs.ErrorTypeNetwork, "connection reset")
		}
		return nil
	}, testConfig())

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnNonRetryableError(t *testing.T) {
	calls := 0
	wantErr := errs.NewRequestFailed(401, "unauthorized")
	err := Do(func() error {
		calls++
		return wantErr
	}, testConfig())

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, wantErr)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(func() error {
		calls++
		return errs.NewRequestFailed(503, "unavailable")
	}, testConfig())

	require.Error(t, err)
	assert.Equal(t, 3, calls)

	var apiErr *errs.Error
	assert.ErrorAs(t, err, &apiErr, "last error must remain inspectable")
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.Backoff = &ConstantBackoff{Delay: time.Second}

	ctx, cancel := context.WithCancel(context.Background())
	cfg.Context = ctx

	calls := 0
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Do(func() error {
		calls++
		return errs.New(errs.ErrorTypeNetwork, "flaky")
	}, cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDoWithResult(t *testing.T) {
	calls := 0
	got, err := DoWithResult(func() (string, error) {
		calls++
		if calls < 2 {
			return "", errs.New(errs.ErrorTypeNetwork, "timeout")
		}
		return "payload", nil
	}, testConfig())

	require.NoError(t, err)
	assert.Equal(t, "payload", got)
	assert.Equal(t, 2, calls)
}

func TestDefaultRetryIf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"network", errs.New(errs.ErrorTypeNetwork, "reset"), true},
		{"rate limit status", errs.NewRequestFailed(429, ""), true},
		{"server error", errs.NewRequestFailed(500, ""), true},
		{"client error", errs.NewRequestFailed(404, ""), false},
		{"parsing", errs.New(errs.ErrorTypeParsing, "bad json"), false},
		{"configuration", errs.New(errs.ErrorTypeConfiguration, "no token"), false},
		{"cancelled", context.Canceled, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultRetryIf(tt.err), tt.name)
	}
}

func TestExponentialBackoffGrowth(t *testing.T) {
	eb := &ExponentialBackoff{
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   time.Second,
		Multiplier: 2.0,
	}

	assert.Equal(t, 100*time.Millisecond, eb.NextDelay(1))
	assert.Equal(t, 200*time.Millisecond, eb.NextDelay(2))
	assert.Equal(t, 400*time.Millisecond, eb.NextDelay(3))
	assert.Equal(t, time.Second, eb.NextDelay(10), "delay must be capped")
}

func TestExponentialBackoffJitterStaysBounded(t *testing.T) {
	eb := &ExponentialBackoff{
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.1,
	}

	for i := 0; i < 50; i++ {
		d := eb.NextDelay(1)
		assert.GreaterOrEqual(t, d, 90*time.Millisecond)
		assert.LessOrEqual(t, d, 110*time.Millisecond)
	}
}

func TestRetrierWithMaxAttempts(t *testing.T) {
	r := NewRetrier(testConfig()).WithMaxAttempts(2)

	calls := 0
	err := r.Do(func() error {
		calls++
		return errs.New(errs.ErrorTypeNetwork, "flaky")
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestNewBoundedRetrier(t *testing.T) {
	r := NewBoundedRetrier(4, time.Millisecond, 10*time.Millisecond, logger.NewTestLogger())

	calls := 0
	err := r.Do(func() error {
		calls++
		if calls < 4 {
			return errs.NewRequestFailed(502, "bad gateway")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 4, calls)
}
