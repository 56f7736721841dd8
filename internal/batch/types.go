// internal/batch/types.go
package batch

import (
	"time"

	"github.com/tamzrod/tic-settings/internal/fix"
)

// Result is produced by fixing one settings file.
type Result struct {
	// Index is the position of Path in Config.Paths.
	Index int
	Path  string
	At    time.Time

	Fixed fix.Result
	Err   error // non-nil means the file was not fixed
}

// Warnings returns the warnings of a successful fix.
func (r Result) Warnings() fix.Warnings {
	if r.Err != nil {
		return nil
	}
	return r.Fixed.Warnings
}
