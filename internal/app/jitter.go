// internal/app/jitter.go
package app

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	DefaultJitterMin = 60 * time.Second
	DefaultJitterMax = 300 * time.Second
)

// Delayer suspends a run before the outbound call.
type Delayer interface {
	Delay(ctx context.Context) (time.Duration, error)
}

// JitterScheduler waits a uniformly random whole number of seconds in [min, max]
// so that redundant triggers do not hit the messaging API at the same instant.
type JitterScheduler struct {
	min, max time.Duration
	randN    func(n int64) int64
	logger   logrus.FieldLogger
}

func NewJitterScheduler(min, max time.Duration, logger logrus.FieldLogger) *JitterScheduler {
	if max < min {
		min, max = max, min
	}
	return &JitterScheduler{
		min:    min,
		max:    max,
		randN:  rand.Int63n,
		logger: logger.WithField("component", "jitter"),
	}
}

// Pick draws the next delay.
func (j *JitterScheduler) Pick() time.Duration {
	span := int64((j.max - j.min) / time.Second)
	if span <= 0 {
		return j.min
	}
	return j.min + time.Duration(j.randN(span+1))*time.Second
}

// Delay blocks for a picked duration or until ctx is done.
func (j *JitterScheduler) Delay(ctx context.Context) (time.Duration, error) {
	d := j.Pick()
	if d <= 0 {
		return 0, ctx.Err()
	}
	j.logger.Infof("Waiting %s before sending notification...", d)

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		j.logger.Warn("Wait interrupted, notification not sent")
		return d, ctx.Err()
	case <-timer.C:
		return d, nil
	}
}
