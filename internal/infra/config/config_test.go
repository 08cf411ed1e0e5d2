package config

import (
	"testing"
	"time"

	"worktime_notifier/internal/domain/execution"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, NotifierSlack, cfg.Notifier)
	assert.Equal(t, "業務開始", cfg.StartDefaultMessage)
	assert.Equal(t, "業務終了", cfg.EndDefaultMessage)
	assert.Equal(t, "Asia/Tokyo", cfg.Location.String())
	assert.Equal(t, execution.DefaultStartWindow, cfg.StartWindow)
	assert.Equal(t, execution.DefaultEndWindow, cfg.EndWindow)
	assert.Equal(t, 60*time.Second, cfg.JitterMin)
	assert.Equal(t, 300*time.Second, cfg.JitterMax)
	assert.Empty(t, cfg.ClosedWeekdays)
	assert.Equal(t, LedgerFile, cfg.LedgerDriver)
	assert.Equal(t, "./data/execution-record.yaml", cfg.LedgerPath)
	assert.Equal(t, "shift-jis", cfg.HolidaysEncoding)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, cfg.EndWindow, cfg.Windows()[execution.KindEnd])
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"SLACK_BOT_TOKEN":       "xoxb-1",
		"SLACK_CHANNEL":         "C123",
		"START_DEFAULT_MESSAGE": "おはようございます",
		"REFERENCE_TZ":          "UTC",
		"START_WINDOW":          "07:00-07:15",
		"CLOSED_WEEKDAYS":       "sat, Sunday",
		"JITTER_MIN":            "0s",
		"JITTER_MAX":            "0s",
		"LEDGER_DRIVER":         "SQLite",
		"NOTIFIER":              "telegram",
		"TELEGRAM_CHAT_ID":      "-100200300",
		"LOG_LEVEL":             "DEBUG",
	}))
	require.NoError(t, err)

	assert.Equal(t, "xoxb-1", cfg.SlackToken, "SLACK_BOT_TOKEN is accepted as a fallback")
	assert.Equal(t, "おはようございます", cfg.StartDefaultMessage)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, execution.Window{First: execution.Clock{Hour: 7}, Last: execution.Clock{Hour: 7, Minute: 15}}, cfg.StartWindow)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, cfg.ClosedWeekdays)
	assert.Zero(t, cfg.JitterMax)
	assert.Equal(t, LedgerSQLite, cfg.LedgerDriver)
	assert.Equal(t, "./data/execution-record.db", cfg.LedgerPath)
	assert.Equal(t, NotifierTelegram, cfg.Notifier)
	assert.Equal(t, int64(-100200300), cfg.TelegramChatID)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestFromEnv_SlackTokenWinsOverBotToken(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{"SLACK_TOKEN": "a", "SLACK_BOT_TOKEN": "b"}))
	require.NoError(t, err)
	assert.Equal(t, "a", cfg.SlackToken)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"notifier":     {"NOTIFIER": "email"},
		"tz":           {"REFERENCE_TZ": "Mars/Olympus"},
		"window":       {"END_WINDOW": "19:00-18:00"},
		"weekday":      {"CLOSED_WEEKDAYS": "funday"},
		"jitter":       {"JITTER_MIN": "5m", "JITTER_MAX": "1m"},
		"duration":     {"JITTER_MAX": "soon"},
		"chat id":      {"TELEGRAM_CHAT_ID": "abc"},
		"ledger":       {"LEDGER_DRIVER": "redis"},
		"postgres dsn": {"LEDGER_DRIVER": "postgres"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}

func TestFromEnv_MissingCredentialsIsNotAConfigError(t *testing.T) {
	// Credentials are validated when the notifier is built.
	_, err := FromEnv(envOf(map[string]string{"NOTIFIER": "slack"}))
	assert.NoError(t, err)
}
