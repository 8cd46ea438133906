package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"proassignment/internal/config"

	log "github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger used across the service.
func Setup(cfg config.LoggingConfig) {
	SetupTo(os.Stdout, cfg)
}

func SetupTo(out io.Writer, cfg config.LoggingConfig) {
	log.SetOutput(out)
	log.SetLevel(ParseLevel(cfg.Level))

	if strings.EqualFold(cfg.Format, "json") {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339})
}

// ParseLevel falls back to info for unknown names.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	}
	return log.InfoLevel
}
