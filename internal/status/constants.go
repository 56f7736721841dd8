// internal/status/constants.go
package status

// Process exit codes.
// These values match ticcmd and MUST NOT be configurable.

// ---- EXIT CODES ----

// ExitOK means every requested operation succeeded. Warnings do not
// change the exit code.
const ExitOK = 0

// ExitBadArgs means the command line could not be used.
const ExitBadArgs = 1

// ExitOperationFailed means an operation failed, including a settings file
// that could not be read.
const ExitOperationFailed = 2

// ---- OUTCOMES ----

// Outcome classifies what happened to one settings file.
type Outcome uint8

// OutcomeClean means the file was valid as given.
const OutcomeClean Outcome = 0

// OutcomeFixed means the file was corrected and warnings were produced.
const OutcomeFixed Outcome = 1

// OutcomeUnreadable means the settings text could not be decoded.
const OutcomeUnreadable Outcome = 2

// OutcomeFailed means an I/O error stopped processing.
const OutcomeFailed Outcome = 3

var outcomeNames = [...]string{
	OutcomeClean:      "clean",
	OutcomeFixed:      "fixed",
	OutcomeUnreadable: "unreadable",
	OutcomeFailed:     "failed",
}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// MarshalText renders outcomes by name in JSON output.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}
