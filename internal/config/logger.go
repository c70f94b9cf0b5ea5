package config

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Environment variables shared by the binaries.
const (
	EnvSeed     = "SHOOTER_SEED"
	EnvLogLevel = "SHOOTER_LOG_LEVEL"
	EnvLogFile  = "SHOOTER_LOG_FILE"
)

// NewLogger creates a logger writing to w at the level named by SHOOTER_LOG_LEVEL
// (debug, info, warn, error). Unknown or missing levels mean info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv(EnvLogLevel, "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}
