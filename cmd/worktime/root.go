package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"worktime_notifier/internal/infra/config"
	"worktime_notifier/internal/infra/logger"
)

var version = "dev"

var (
	cfg *config.AppConfig
	log *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:           "worktime",
	Short:         "Send work start/end notifications, skipping holidays and duplicate runs",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		log = logger.Init(cfg)
		log.Debugf("Configuration loaded. Notifier: %s, Ledger: %s, Zone: %s", cfg.Notifier, cfg.LedgerDriver, cfg.Location)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.AddCommand(newRunCmd("start", "Send work start notification"))
	rootCmd.AddCommand(newRunCmd("end", "Send work end notification"))
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
}
