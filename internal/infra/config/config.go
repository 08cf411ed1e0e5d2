package config

import (
	"fmt"
	"os"
	"strconv"
	"strings" // For LogLevel normalization
	"time"
	_ "time/tzdata" // Reference timezone must resolve on hosts without zoneinfo

	"worktime_notifier/internal/domain/execution"

	"github.com/joho/godotenv"
)

// Notifier backends.
const (
	NotifierSlack        = "slack"
	NotifierSlackWebhook = "slack-webhook"
	NotifierTelegram     = "telegram"
)

// Ledger drivers.
const (
	LedgerFile     = "file"
	LedgerSQLite   = "sqlite"
	LedgerPostgres = "postgres"
)

// AppConfig holds all configuration for the application.
// It is built once in main and handed to each component's constructor.
type AppConfig struct {
	Notifier        string
	SlackToken      string
	SlackChannel    string
	SlackWebhookURL string
	TelegramToken   string
	TelegramChatID  int64

	StartDefaultMessage string
	EndDefaultMessage   string

	Location       *time.Location
	StartWindow    execution.Window
	EndWindow      execution.Window
	ClosedWeekdays []time.Weekday
	JitterMin      time.Duration
	JitterMax      time.Duration

	HolidaysCSV      string
	HolidaysEncoding string

	LedgerDriver string
	LedgerPath   string
	DatabaseURL  string

	CronSpecStart string
	CronSpecEnd   string

	MetricsAddr    string
	PushgatewayURL string

	LogLevel    string
	Environment string
}

// Windows returns the admission window per kind.
func (c *AppConfig) Windows() map[execution.Kind]execution.Window {
	return map[execution.Kind]execution.Window{
		execution.KindStart: c.StartWindow,
		execution.KindEnd:   c.EndWindow,
	}
}

// Load reads configuration from environment variables and .env file (if present).
// Credentials are not validated here: a missing token or channel is reported
// by the notifier constructor.
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (*AppConfig, error) {
	cfg := &AppConfig{}
	var err error

	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg.Notifier = strings.ToLower(get("NOTIFIER", NotifierSlack))
	switch cfg.Notifier {
	case NotifierSlack, NotifierSlackWebhook, NotifierTelegram:
	default:
		return nil, fmt.Errorf("invalid NOTIFIER %q", cfg.Notifier)
	}

	cfg.SlackToken = get("SLACK_TOKEN", getenv("SLACK_BOT_TOKEN"))
	cfg.SlackChannel = get("SLACK_CHANNEL", "")
	cfg.SlackWebhookURL = get("SLACK_WEBHOOK_URL", "")
	cfg.TelegramToken = get("TELEGRAM_TOKEN", "")
	if chatID := get("TELEGRAM_CHAT_ID", ""); chatID != "" {
		cfg.TelegramChatID, err = strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
	}

	cfg.StartDefaultMessage = get("START_DEFAULT_MESSAGE", "業務開始")
	cfg.EndDefaultMessage = get("END_DEFAULT_MESSAGE", "業務終了")

	cfg.Location, err = time.LoadLocation(get("REFERENCE_TZ", "Asia/Tokyo"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFERENCE_TZ: %w", err)
	}

	cfg.StartWindow, err = execution.ParseWindow(get("START_WINDOW", execution.DefaultStartWindow.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid START_WINDOW: %w", err)
	}
	cfg.EndWindow, err = execution.ParseWindow(get("END_WINDOW", execution.DefaultEndWindow.String()))
	if err != nil {
		return nil, fmt.Errorf("invalid END_WINDOW: %w", err)
	}

	cfg.ClosedWeekdays, err = parseWeekdays(get("CLOSED_WEEKDAYS", ""))
	if err != nil {
		return nil, fmt.Errorf("invalid CLOSED_WEEKDAYS: %w", err)
	}

	cfg.JitterMin, err = time.ParseDuration(get("JITTER_MIN", "60s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JITTER_MIN: %w", err)
	}
	cfg.JitterMax, err = time.ParseDuration(get("JITTER_MAX", "300s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JITTER_MAX: %w", err)
	}
	if cfg.JitterMin < 0 || cfg.JitterMax < cfg.JitterMin {
		return nil, fmt.Errorf("invalid jitter bounds [%s, %s]", cfg.JitterMin, cfg.JitterMax)
	}

	cfg.HolidaysCSV = get("HOLIDAYS_CSV", "./holidays/syukujitsu.csv")
	cfg.HolidaysEncoding = strings.ToLower(get("HOLIDAYS_ENCODING", "shift-jis"))

	cfg.LedgerDriver = strings.ToLower(get("LEDGER_DRIVER", LedgerFile))
	cfg.DatabaseURL = get("DATABASE_URL", "")
	switch cfg.LedgerDriver {
	case LedgerFile:
		cfg.LedgerPath = get("LEDGER_PATH", "./data/execution-record.yaml")
	case LedgerSQLite:
		cfg.LedgerPath = get("LEDGER_PATH", "./data/execution-record.db")
	case LedgerPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set")
		}
	default:
		return nil, fmt.Errorf("invalid LEDGER_DRIVER %q", cfg.LedgerDriver)
	}

	cfg.CronSpecStart = get("START_CRON", "30 8 * * *") // Default: 08:30 daily
	cfg.CronSpecEnd = get("END_CRON", "0 18 * * *")     // Default: 18:00 daily

	cfg.MetricsAddr = get("METRICS_ADDR", "")
	cfg.PushgatewayURL = get("PUSHGATEWAY_URL", "")

	cfg.LogLevel = strings.ToLower(get("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(get("ENVIRONMENT", "development"))

	return cfg, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// parseWeekdays accepts a comma separated list like "sat,sun" or "saturday, sunday".
func parseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []time.Weekday
	for _, part := range strings.Split(s, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if len(name) < 3 {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		wd, ok := weekdayNames[name[:3]]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		out = append(out, wd)
	}
	return out, nil
}
