// internal/status/encode.go
package status

// Summary counts outcomes over a batch.
type Summary struct {
	Files      int `json:"files"`
	Clean      int `json:"clean"`
	Fixed      int `json:"fixed"`
	Unreadable int `json:"unreadable"`
	Failed     int `json:"failed"`
	Warnings   int `json:"warnings"`
}

// Encode folds reports into a Summary.
// No IO. No side effects.
func Encode(reports []Report) Summary {
	var s Summary
	for _, r := range reports {
		s.Files++
		s.Warnings += len(r.Warnings)
		switch r.Outcome {
		case OutcomeClean:
			s.Clean++
		case OutcomeFixed:
			s.Fixed++
		case OutcomeUnreadable:
			s.Unreadable++
		default:
			s.Failed++
		}
	}
	return s
}

// ExitCode is ExitOperationFailed when any file could not be processed.
func (s Summary) ExitCode() int {
	if s.Unreadable > 0 || s.Failed > 0 {
		return ExitOperationFailed
	}
	return ExitOK
}
