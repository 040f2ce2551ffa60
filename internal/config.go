// Package internal holds process-level configuration and tooling shared by
// the entry points.
package internal

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

type Config struct {
	Host string `env:"HOST,required=true"`
	Port int    `env:"PORT,required=true"`

	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH,required=true"`

	// MessageEncryptionKey is the 64-hex-char default key for server-side
	// envelopes. Key material only ever enters through the environment.
	MessageEncryptionKey string        `env:"MESSAGE_ENCRYPTION_KEY,required=true"`
	TokenSecret          string        `env:"TOKEN_SECRET,required=true"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,required=true"`

	BufferSize     int           `env:"BUFFER_SIZE,required=true"`
	SinkTimeout    time.Duration `env:"SINK_TIMEOUT,required=true"`
	GCInterval     time.Duration `env:"GC_INTERVAL,required=true"`
	MetricInterval time.Duration `env:"METRIC_INTERVAL,required=true"`

	LimitMessages *int   `env:"LIMIT_MESSAGES"`
	LogLevel      string `env:"LOG_LEVEL,required=true"`
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// NewLogger builds the process logger. Unknown levels fall back to info
// rather than failing startup.
func NewLogger(level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}
