// internal/config/normalize.go
package config

import (
	"path/filepath"
	"runtime"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := Default()

	// ------------------------------------------------------------
	// LOGGING
	// ------------------------------------------------------------

	l := &cfg.Logging
	if l.Level == "" {
		l.Level = d.Logging.Level
	}
	if l.Format == "" {
		l.Format = d.Logging.Format
	}
	if l.Output == "" {
		l.Output = d.Logging.Output
	}

	// ------------------------------------------------------------
	// SERVER
	// ------------------------------------------------------------

	s := &cfg.Server
	if s.Listen == "" {
		s.Listen = d.Server.Listen
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = d.Server.ReadTimeout
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = d.Server.WriteTimeout
	}
	if s.ShutdownTimeout == 0 {
		s.ShutdownTimeout = d.Server.ShutdownTimeout
	}
	if s.MaxBodyBytes == 0 {
		s.MaxBodyBytes = d.Server.MaxBodyBytes
	}

	// ------------------------------------------------------------
	// BATCH
	// ------------------------------------------------------------

	b := &cfg.Batch
	if b.Workers == 0 {
		b.Workers = runtime.NumCPU()
	}
	if b.Output == "" {
		b.Output = d.Batch.Output
	}
	if b.Dir != "" {
		b.Dir = filepath.Clean(b.Dir)
	}
}
