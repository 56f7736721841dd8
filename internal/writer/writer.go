// internal/writer/writer.go
package writer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/tamzrod/tic-settings/internal/batch"
	cfg "github.com/tamzrod/tic-settings/internal/config"
)

// Diagnostic prefixes, as printed by ticcmd.
const (
	WarningPrefix = "Warning: "
	ErrorPrefix   = "Error: "
)

type writerImpl struct {
	plan   Plan
	stdout io.Writer
	diag   io.Writer
	files  Files
}

// New returns a Writer. Settings text goes to stdout or files; warnings
// and errors go to diag.
func New(plan Plan, stdout, diag io.Writer, files Files) Writer {
	return &writerImpl{
		plan:   plan,
		stdout: stdout,
		diag:   diag,
		files:  files,
	}
}

func (w *writerImpl) Write(res batch.Result) error {
	var errs []string

	// ------------------------------------------------------------
	// DIAGNOSTICS
	// ------------------------------------------------------------

	prefix := ""
	if w.plan.Label {
		prefix = res.Path + ": "
	}

	if res.Err != nil {
		if _, err := fmt.Fprintf(w.diag, "%s%s%v\n", prefix, ErrorPrefix, res.Err); err != nil {
			errs = append(errs, fmt.Sprintf("writer: diagnostics: %v", err))
		}
		return joinErrs(errs)
	}

	if ws := res.Fixed.Warnings; len(ws) > 0 {
		if _, err := io.WriteString(w.diag, ws.Text(prefix+WarningPrefix)); err != nil {
			errs = append(errs, fmt.Sprintf("writer: diagnostics: %v", err))
		}
	}

	// ------------------------------------------------------------
	// SETTINGS TEXT
	// ------------------------------------------------------------

	text := res.Fixed.Text

	switch w.plan.Mode {
	case cfg.OutputNone:

	case cfg.OutputStdout:
		if _, err := w.stdout.Write(text); err != nil {
			errs = append(errs, fmt.Sprintf("writer: stdout: %v", err))
		}

	case ModeFile:
		if w.plan.Path == batch.StdioPath {
			if _, err := w.stdout.Write(text); err != nil {
				errs = append(errs, fmt.Sprintf("writer: stdout: %v", err))
			}
			break
		}
		if err := w.files.WriteFile(w.plan.Path, text); err != nil {
			errs = append(errs, fmt.Sprintf("writer: path=%s err=%v", w.plan.Path, err))
		}

	case cfg.OutputInPlace:
		if err := w.files.WriteFile(res.Path, text); err != nil {
			errs = append(errs, fmt.Sprintf("writer: path=%s err=%v", res.Path, err))
		}

	case cfg.OutputDir:
		dst := filepath.Join(w.plan.Dir, filepath.Base(res.Path))
		if err := w.files.WriteFile(dst, text); err != nil {
			errs = append(errs, fmt.Sprintf("writer: path=%s err=%v", dst, err))
		}

	default:
		errs = append(errs, fmt.Sprintf("writer: unsupported mode %q", w.plan.Mode))
	}

	return joinErrs(errs)
}

func joinErrs(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(errs, " | "))
}
