package utils

import (
	"io"
	"log"
	"os"
)

// LoggerConfig defines optional logger settings.
type LoggerConfig struct {
	Output io.Writer
}

// InitLogger initializes the application logger and points the global
// stdlib logger at the same sink and prefix, so packages logging through
// the log default (the domain actions do) share one format.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	log.SetOutput(cfg.Output)
	log.SetPrefix("[LMS] ")
	log.SetFlags(log.LstdFlags | log.LUTC)

	return log.New(cfg.Output, "[LMS] ", log.LstdFlags|log.LUTC)
}
