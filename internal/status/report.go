// internal/status/report.go
package status

import (
	"errors"

	"github.com/tamzrod/tic-settings/internal/fix"
)

// Report is the outcome of processing one settings file.
// It contains no logic beyond classification.
type Report struct {
	Path     string       `json:"path"`
	Product  string       `json:"product,omitempty"`
	Outcome  Outcome      `json:"outcome"`
	Warnings fix.Warnings `json:"warnings,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// NewReport classifies the result of fixing the file at path.
func NewReport(path string, res fix.Result, err error) Report {
	r := Report{Path: path}

	var readErr *fix.ReadError
	switch {
	case errors.As(err, &readErr):
		r.Outcome = OutcomeUnreadable
		r.Error = err.Error()
	case err != nil:
		r.Outcome = OutcomeFailed
		r.Error = err.Error()
	case len(res.Warnings) > 0:
		r.Outcome = OutcomeFixed
		r.Product = res.Settings.Product.String()
		r.Warnings = res.Warnings
	default:
		r.Outcome = OutcomeClean
		r.Product = res.Settings.Product.String()
	}
	return r
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var bad *BadArgsError
	if errors.As(err, &bad) {
		return ExitBadArgs
	}
	return ExitOperationFailed
}

// BadArgsError marks a command-line usage error.
type BadArgsError struct {
	Err error
}

func (e *BadArgsError) Error() string { return e.Err.Error() }

func (e *BadArgsError) Unwrap() error { return e.Err }
