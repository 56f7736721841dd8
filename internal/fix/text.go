// internal/fix/text.go
package fix

import (
	"fmt"

	"github.com/tamzrod/tic-settings/internal/settings"
)

// Options controls FixText.
type Options struct {
	// FirmwareVersion is the BCD firmware version of the target device,
	// or 0 when unknown.
	FirmwareVersion uint16
}

// Result is the outcome of fixing a settings file.
type Result struct {
	Settings settings.Settings
	Warnings Warnings

	// Text is the fixed settings file.
	Text []byte
}

// ReadError reports a settings file that could not be decoded.
// No fixing is attempted when it is returned.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "There was an error reading the settings file.  " + e.Err.Error()
}

func (e *ReadError) Unwrap() error { return e.Err }

// FixText decodes a settings file, fixes it and encodes the result.
func FixText(data []byte, opts Options) (Result, error) {
	s, err := settings.DecodeSettings(data)
	if err != nil {
		return Result{}, &ReadError{Err: err}
	}
	s.FirmwareVersion = opts.FirmwareVersion

	fixed, warnings := Fix(s)

	out, err := settings.Encode(fixed)
	if err != nil {
		return Result{}, fmt.Errorf("write settings: %w", err)
	}

	return Result{
		Settings: fixed,
		Warnings: warnings,
		Text:     out,
	}, nil
}
