package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"worktime_notifier/internal/app"
	"worktime_notifier/internal/domain/execution"
	"worktime_notifier/internal/domain/notifier"
	"worktime_notifier/internal/infra/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connection status and holiday information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := statusReport(cmd.Context(), cfg, log)
		renderStatus(cmd.OutOrStdout(), report)
		if report.ConnectivityErr != nil {
			return fmt.Errorf("%s connection failed: %w", report.Connectivity.Provider, report.ConnectivityErr)
		}
		return nil
	},
}

// statusReport gathers calendar and ledger state first; a notifier that cannot
// be built is reported as a connectivity failure after them.
func statusReport(ctx context.Context, cfg *config.AppConfig, log logrus.FieldLogger) app.StatusReport {
	cal := loadCalendar(ctx, cfg, log)
	ledger, closeLedger := openLedger(ctx, cfg, log)
	defer closeLedger()

	n, err := newNotifier(cfg)
	if err != nil {
		report := app.NewStatusService(cal, ledger, nil, gateConfig(cfg)).Report(ctx)
		report.Connectivity = notifier.Connectivity{Provider: cfg.Notifier}
		report.ConnectivityErr = err
		return report
	}
	return app.NewStatusService(cal, ledger, n, gateConfig(cfg)).Report(ctx)
}

func renderStatus(w io.Writer, r app.StatusReport) {
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	rows := [][]string{
		{"Today", fmt.Sprintf("%s (%s)", r.Now.Format("2006-01-02"), r.Now.Weekday())},
		{"Reference time", r.Now.Format("15:04:05 MST")},
		{"Holiday", yesNo(r.IsHoliday)},
		{"Holidays loaded", fmt.Sprint(r.HolidayCount)},
	}
	if r.CalendarDegraded {
		rows = append(rows, []string{"Calendar", "degraded: " + fmt.Sprint(r.CalendarErr)})
	}
	for _, k := range execution.Kinds {
		last := "never"
		if t, ok := r.LastExecutions[k]; ok {
			last = t.Format(time.RFC3339)
		}
		rows = append(rows,
			[]string{fmt.Sprintf("Window (%s)", k), r.Windows[k].String()},
			[]string{fmt.Sprintf("Last %s", k), last},
		)
	}
	conn := r.Connectivity
	if r.ConnectivityErr != nil {
		rows = append(rows, []string{"Connection (" + conn.Provider + ")", "FAILED: " + r.ConnectivityErr.Error()})
	} else {
		rows = append(rows,
			[]string{"Connection (" + conn.Provider + ")", "ok as " + conn.Identity},
			[]string{"Target channel", conn.Channel},
		)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Item", "Value"})
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}
