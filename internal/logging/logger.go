package logging

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/patronus-sdwan/patronus-go/internal/config"
)

// NewLogger creates a structured zerolog.Logger for the CLI. The level
// falls back to info when the configured value does not parse.
func NewLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("service", "patronusctl").
		Logger()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	return logger.Level(level)
}
