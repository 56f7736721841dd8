// internal/config/validate.go
package config

import (
	"errors"
	"fmt"
	"net"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration. Empty values are allowed; Normalize
// fills them.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: nil")
	}

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	l := cfg.Logging

	switch l.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q: must be debug, info, warn or error", l.Level)
	}

	switch l.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("logging.format %q: must be json or console", l.Format)
	}

	if l.MaxSize < 0 || l.MaxBackups < 0 || l.MaxAge < 0 {
		return fmt.Errorf(
			"logging rotation: max_size=%d max_backups=%d max_age=%d must not be negative",
			l.MaxSize,
			l.MaxBackups,
			l.MaxAge,
		)
	}

	// ------------------------------------------------------------
	// SERVER
	// ------------------------------------------------------------

	s := cfg.Server

	if s.Listen != "" {
		if _, _, err := net.SplitHostPort(s.Listen); err != nil {
			return fmt.Errorf("server.listen %q: %w", s.Listen, err)
		}
	}

	if s.ReadTimeout < 0 || s.WriteTimeout < 0 || s.ShutdownTimeout < 0 {
		return errors.New("server timeouts must not be negative")
	}

	if s.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes %d: must not be negative", s.MaxBodyBytes)
	}

	// ------------------------------------------------------------
	// BATCH
	// ------------------------------------------------------------

	b := cfg.Batch

	if b.Workers < 0 {
		return fmt.Errorf("batch.workers %d: must not be negative", b.Workers)
	}

	switch b.Output {
	case "", OutputStdout, OutputInPlace, OutputNone:
	case OutputDir:
		if b.Dir == "" {
			return fmt.Errorf("batch.output is %q but batch.dir is empty", OutputDir)
		}
	default:
		return fmt.Errorf("batch.output %q: must be stdout, inplace, dir or none", b.Output)
	}

	return nil
}
