// internal/fix/fix.go
package fix

import (
	"fmt"
	"strings"

	"github.com/tamzrod/tic-settings/internal/settings"
	"github.com/tamzrod/tic-settings/internal/variant"
)

// Warning records one correction made to a settings record.
type Warning struct {
	// Field is the settings-file key that was corrected.
	Field string `json:"field"`

	// Message is the user-facing text, terminated by a newline.
	Message string `json:"message"`
}

// Warnings is an ordered warning list.
type Warnings []Warning

// Text concatenates the messages, each prefixed with prefix.
func (ws Warnings) Text(prefix string) string {
	var b strings.Builder
	for _, w := range ws {
		b.WriteString(prefix)
		b.WriteString(w.Message)
	}
	return b.String()
}

// fixer carries one fix pass.
// It is created per call and never shared.
type fixer struct {
	s *settings.Settings
	v *variant.Variant

	warnings Warnings
}

func (f *fixer) warn(field, format string, args ...any) {
	f.warnings = append(f.warnings, Warning{Field: field, Message: fmt.Sprintf(format, args...)})
}

// olderThan reports whether the firmware version is known and predates
// version.
func (f *fixer) olderThan(version uint16) bool {
	fw := f.s.FirmwareVersion
	return fw != 0 && fw < version
}

// Fix returns a corrected copy of s and the corrections made, in rule
// order. s.Product must be a known product.
//
// Fix never fails: every record has a valid fixed form. Running Fix on its
// own output yields the same record and no warnings.
func Fix(s settings.Settings) (settings.Settings, Warnings) {
	f := &fixer{
		s: &s,
		v: variant.MustLookup(s.Product),
	}

	f.fixEnums()
	f.fixCore()
	f.fixPins()
	f.fixGateCharge()

	return s, f.warnings
}

// Check reports the corrections Fix would make without returning the
// fixed record.
func Check(s settings.Settings) Warnings {
	_, ws := Fix(s)
	return ws
}
