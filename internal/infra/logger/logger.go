// internal/infra/logger/logger.go
package logger

import (
	"io"
	"os"
	"strings"
	"worktime_notifier/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the process logger. main hands it to constructors; components never read it directly.
var Log = logrus.New()

// Init configures Log from the application configuration and returns it.
func Init(cfg *config.AppConfig) *logrus.Logger {
	Configure(Log, cfg, os.Stdout)
	return Log
}

// Configure applies level and format to l.
func Configure(l *logrus.Logger, cfg *config.AppConfig, out io.Writer) {
	l.SetOutput(out)

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		l.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		l.SetLevel(logrus.InfoLevel)
	} else {
		l.SetLevel(level)
	}

	// Set Log Formatter
	if env := strings.ToLower(cfg.Environment); env == "production" || env == "staging" {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		})
	} else { // Development or other environments
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	l.Debugf("Log level set to: %s", l.GetLevel().String())
	l.Debugf("Log format set for environment: %s", cfg.Environment)
}
