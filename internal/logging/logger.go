package logging

import (
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// EnvLogLevel selects the log level when no level is passed explicitly.
	EnvLogLevel = "DRP_LOG_LEVEL"
	// EnvJSONLog switches output to JSON lines when set to "1".
	EnvJSONLog = "DRP_JSON_LOG"

	defaultLevel = "warn"
)

// NewLogger creates a new hclog logger with standard settings.
//
// An empty level falls back to GetLogLevel; a nil output writes to stderr.
func NewLogger(name string, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if level == "" {
		level = GetLogLevel()
	}

	opts := &hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv(EnvJSONLog) == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	}

	return hclog.New(opts)
}

// GetLogLevel returns the configured log level from environment.
func GetLogLevel() string {
	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = defaultLevel
	}

	return level
}
