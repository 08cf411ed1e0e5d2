package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"worktime_notifier/internal/app"
	"worktime_notifier/internal/domain/calendar"
	"worktime_notifier/internal/domain/execution"
	"worktime_notifier/internal/domain/notifier"
	"worktime_notifier/internal/infra/config"
	idb "worktime_notifier/internal/infra/database"
	"worktime_notifier/internal/infra/holidays"
	"worktime_notifier/internal/infra/metrics"
	"worktime_notifier/internal/infra/slack"
	"worktime_notifier/internal/infra/telegram"
)

// newNotifier builds the configured backend. A missing credential or channel
// is returned here, before any gating happens.
func newNotifier(cfg *config.AppConfig) (notifier.Notifier, error) {
	switch cfg.Notifier {
	case config.NotifierSlackWebhook:
		return slack.NewWebhookNotifier(cfg.SlackWebhookURL)
	case config.NotifierTelegram:
		return telegram.NewTelebotNotifier(cfg.TelegramToken, cfg.TelegramChatID)
	default:
		return slack.NewNotifier(cfg.SlackToken, cfg.SlackChannel)
	}
}

// loadCalendar never fails: a broken source yields a degraded store and a warning.
func loadCalendar(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) calendar.Result {
	res := calendar.Load(ctx, holidays.NewCSVSource(cfg.HolidaysCSV, cfg.HolidaysEncoding))
	if res.Degraded() {
		log.WithError(res.Err).Warn("Failed to load holidays, assuming no holidays")
		return res
	}
	log.Infof("Loaded %d holidays from %s", res.Store.Count(), cfg.HolidaysCSV)
	if n := res.Store.Skipped(); n > 0 {
		log.Debugf("Skipped %d malformed holiday entries", n)
	}
	return res
}

// openLedger opens the configured backend. An unavailable backend is logged and
// replaced by an empty in-memory ledger so the run can still proceed.
func openLedger(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) (*app.ExecutionLedger, func()) {
	repo, err := idb.OpenExecutionRepository(ctx, cfg)
	if err != nil {
		log.WithError(err).Warn("Execution ledger unavailable, duplicate protection disabled for this run")
		return app.NewExecutionLedger(nil, cfg.Location, log), func() {}
	}
	return app.NewExecutionLedger(repo, cfg.Location, log), func() { _ = repo.Close() }
}

func gateConfig(cfg *config.AppConfig) app.GateConfig {
	return app.GateConfig{
		Location:       cfg.Location,
		Windows:        cfg.Windows(),
		ClosedWeekdays: cfg.ClosedWeekdays,
	}
}

func messages(cfg *config.AppConfig) app.Messages {
	return app.Messages{
		execution.KindStart: cfg.StartDefaultMessage,
		execution.KindEnd:   cfg.EndDefaultMessage,
	}
}

// runOnce loads fresh calendar and ledger state and executes one run.
func runOnce(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger, n notifier.Notifier, m *metrics.Metrics, kind execution.Kind, override string) (app.Outcome, error) {
	cal := loadCalendar(ctx, cfg, log)
	ledger, closeLedger := openLedger(ctx, cfg, log)
	defer closeLedger()

	gate := app.NewAdmissionGate(gateConfig(cfg), cal.Store, ledger, log)
	jitter := app.NewJitterScheduler(cfg.JitterMin, cfg.JitterMax, log)
	var observer app.RunObserver
	if m != nil {
		observer = m
	}
	orch := app.NewOrchestrator(gate, jitter, n, ledger, messages(cfg), observer, log)
	return orch.Run(ctx, kind, override)
}

func pushMetrics(cfg *config.AppConfig, log logrus.FieldLogger, m *metrics.Metrics) {
	if cfg.PushgatewayURL == "" || m == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := m.Push(ctx, cfg.PushgatewayURL, "worktime"); err != nil {
		log.WithError(err).Warn("Failed to push metrics")
	}
}

func describe(out app.Outcome) string {
	switch out.State {
	case app.StateRecorded:
		return fmt.Sprintf("%s notification sent (run %s)", out.Kind, out.RunID)
	case app.StateRejected:
		return fmt.Sprintf("%s notification skipped: %v", out.Kind, out.Decision.Reasons)
	}
	return fmt.Sprintf("%s notification %s", out.Kind, out.State)
}
