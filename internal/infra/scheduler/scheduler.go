package scheduler

import (
	"context"
	"time"

	"worktime_notifier/internal/domain/execution"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RunFunc executes one notification run for kind.
type RunFunc func(ctx context.Context, kind execution.Kind) error

// NotificationScheduler triggers start/end runs on cron specs in the reference timezone.
type NotificationScheduler struct {
	cronEngine    *cron.Cron
	run           RunFunc
	logger        logrus.FieldLogger
	cronSpecStart string
	cronSpecEnd   string

	ctx    context.Context
	cancel context.CancelFunc
}

func NewNotificationScheduler(
	run RunFunc,
	logger logrus.FieldLogger,
	loc *time.Location,
	cronSpecStart string, // e.g., "30 8 * * *" (08:30 daily)
	cronSpecEnd string, // e.g., "0 18 * * *" (18:00 daily)
) *NotificationScheduler {
	cronLogger := cron.VerbosePrintfLogger(logger.WithField("component", "cron"))
	return &NotificationScheduler{
		cronEngine: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		run:           run,
		logger:        logger.WithField("component", "scheduler"),
		cronSpecStart: cronSpecStart,
		cronSpecEnd:   cronSpecEnd,
	}
}

// Start registers both jobs and starts the cron engine. Jobs receive a context
// derived from parent, so cancelling parent interrupts a pending jitter wait.
func (s *NotificationScheduler) Start(parent context.Context) error {
	s.logger.Info("Starting notification scheduler...")
	s.ctx, s.cancel = context.WithCancel(parent)

	jobs := []struct {
		spec string
		kind execution.Kind
	}{
		{s.cronSpecStart, execution.KindStart},
		{s.cronSpecEnd, execution.KindEnd},
	}
	for _, j := range jobs {
		kind := j.kind
		if _, err := s.cronEngine.AddFunc(j.spec, func() { s.execute(kind) }); err != nil {
			s.cancel()
			return err
		}
		s.logger.Infof("Scheduled %s notification with spec %q", kind, j.spec)
	}

	s.cronEngine.Start()
	s.logger.Info("Notification scheduler started with jobs.")
	return nil
}

func (s *NotificationScheduler) execute(kind execution.Kind) {
	s.logger.Infof("Cron job triggered for %s notification.", kind)
	if err := s.run(s.ctx, kind); err != nil {
		s.logger.WithError(err).Errorf("Error during %s notification run", kind)
	}
}

// Next returns the next activation times, for logging and status.
func (s *NotificationScheduler) Next() []time.Time {
	var out []time.Time
	for _, e := range s.cronEngine.Entries() {
		out = append(out, e.Next)
	}
	return out
}

func (s *NotificationScheduler) Stop() {
	s.logger.Info("Stopping notification scheduler...")
	if s.cancel != nil {
		s.cancel() // Interrupts a job waiting on jitter
	}
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	<-ctx.Done()               // Wait for graceful shutdown
	s.logger.Info("Notification scheduler gracefully stopped.")
}
