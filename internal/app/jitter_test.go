package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJitterScheduler_PickBounds(t *testing.T) {
	logger, _ := newTestLogger()
	j := NewJitterScheduler(DefaultJitterMin, DefaultJitterMax, logger)

	j.randN = func(n int64) int64 { return 0 }
	assert.Equal(t, 60*time.Second, j.Pick())

	j.randN = func(n int64) int64 { return n - 1 }
	assert.Equal(t, 300*time.Second, j.Pick())

	var gotN int64
	j.randN = func(n int64) int64 { gotN = n; return 0 }
	j.Pick()
	assert.Equal(t, int64(241), gotN, "every whole second in [60, 300] is reachable")
}

func TestJitterScheduler_PickIsWithinRange(t *testing.T) {
	logger, _ := newTestLogger()
	j := NewJitterScheduler(DefaultJitterMin, DefaultJitterMax, logger)
	for i := 0; i < 2000; i++ {
		d := j.Pick()
		assert.GreaterOrEqual(t, d, DefaultJitterMin)
		assert.LessOrEqual(t, d, DefaultJitterMax)
		assert.Zero(t, d%time.Second)
	}
}

func TestJitterScheduler_ZeroBoundsReturnImmediately(t *testing.T) {
	logger, _ := newTestLogger()
	j := NewJitterScheduler(0, 0, logger)
	d, err := j.Delay(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, d)
}

func TestJitterScheduler_Waits(t *testing.T) {
	logger, _ := newTestLogger()
	j := NewJitterScheduler(time.Second, time.Second, logger)
	start := time.Now()
	d, err := j.Delay(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, time.Second, d)
	assert.GreaterOrEqual(t, time.Since(start), time.Second)
}

func TestJitterScheduler_Cancel(t *testing.T) {
	logger, _ := newTestLogger()
	j := NewJitterScheduler(time.Hour, time.Hour, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := j.Delay(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), 5*time.Second)
}
