package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"worktime_notifier/internal/domain/execution"
	"worktime_notifier/internal/infra/metrics"
	"worktime_notifier/internal/infra/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run start/end notifications on a cron schedule until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		n, err := newNotifier(cfg)
		if err != nil {
			return err
		}
		m := metrics.New()

		run := func(ctx context.Context, kind execution.Kind) error {
			out, err := runOnce(ctx, cfg, log, n, m, kind, "")
			if err == nil {
				log.Info(describe(out))
			}
			return err
		}
		sched := scheduler.NewNotificationScheduler(run, log, cfg.Location, cfg.CronSpecStart, cfg.CronSpecEnd)
		if err := sched.Start(ctx); err != nil {
			return err
		}
		for _, next := range sched.Next() {
			log.Infof("Next activation at %s", next.In(cfg.Location).Format(time.RFC3339))
		}

		var srv *http.Server
		if cfg.MetricsAddr != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", m.Handler())
			srv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
			go func() {
				log.Infof("Serving metrics on %s/metrics", cfg.MetricsAddr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.WithError(err).Error("Metrics server failed")
				}
			}()
		}

		<-ctx.Done()
		log.Info("Shutting down...")
		sched.Stop()
		if srv != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}
		log.Info("Shut down gracefully.")
		return nil
	},
}
