// internal/batch/batch.go
package batch

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/tic-settings/internal/fix"
)

// Source abstracts reading settings files.
type Source interface {
	ReadFile(path string) ([]byte, error)
}

// Config is the minimal runtime config the runner needs.
type Config struct {
	Workers         int
	FirmwareVersion uint16 // applied to every file; 0 = unknown
	Paths           []string
}

// Runner fixes a fixed list of settings files.
type Runner struct {
	cfg Config
	src Source
	log *zap.Logger
}

// New creates a runner with immutable config.
func New(cfg Config, src Source, log *zap.Logger) (*Runner, error) {
	if src == nil {
		return nil, errors.New("batch: source required")
	}
	if cfg.Workers <= 0 {
		return nil, errors.New("batch: workers must be > 0")
	}
	if len(cfg.Paths) == 0 {
		return nil, errors.New("batch: at least one path required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	cfg.Paths = append([]string(nil), cfg.Paths...)
	return &Runner{cfg: cfg, src: src, log: log}, nil
}

// Paths returns the files the runner processes, in order.
func (r *Runner) Paths() []string {
	return append([]string(nil), r.cfg.Paths...)
}

// FixOnce reads and fixes exactly one file.
// A decode failure is returned as *fix.ReadError in Result.Err.
func (r *Runner) FixOnce(path string) Result {
	res := Result{
		Path: path,
		At:   time.Now(),
	}

	data, err := r.src.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", path, err)
		r.log.Info("settings file not read", zap.String("path", path), zap.Error(err))
		return res
	}

	fixed, err := fix.FixText(data, fix.Options{FirmwareVersion: r.cfg.FirmwareVersion})
	if err != nil {
		res.Err = err
		r.log.Info("settings file not decoded", zap.String("path", path), zap.Error(err))
		return res
	}

	res.Fixed = fixed
	r.log.Debug("settings file fixed",
		zap.String("path", path),
		zap.String("product", fixed.Settings.Product.String()),
		zap.Int("warnings", len(fixed.Warnings)),
	)
	return res
}
