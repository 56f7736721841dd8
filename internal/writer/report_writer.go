// internal/writer/report_writer.go
package writer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tamzrod/tic-settings/internal/status"
)

// ReportWriter delivers per-file reports and the batch summary.
// No logic, no state, no interpretation.
type ReportWriter struct {
	out  io.Writer
	json bool
}

// NewReportWriter writes text lines, or one JSON document when asJSON is set.
func NewReportWriter(out io.Writer, asJSON bool) *ReportWriter {
	return &ReportWriter{out: out, json: asJSON}
}

type reportDocument struct {
	Files   []status.Report `json:"files"`
	Summary status.Summary  `json:"summary"`
}

// WriteReports writes every report followed by the summary.
func (rw *ReportWriter) WriteReports(reports []status.Report) error {
	if rw == nil || rw.out == nil {
		return errors.New("report writer: disabled")
	}

	summary := status.Encode(reports)

	if rw.json {
		enc := json.NewEncoder(rw.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reportDocument{Files: reports, Summary: summary}); err != nil {
			return fmt.Errorf("report writer: %w", err)
		}
		return nil
	}

	for _, r := range reports {
		line := fmt.Sprintf("%s: %s", r.Path, r.Outcome)
		if n := len(r.Warnings); n > 0 {
			line += fmt.Sprintf(" (%d warnings)", n)
		}
		if _, err := fmt.Fprintln(rw.out, line); err != nil {
			return fmt.Errorf("report writer: %w", err)
		}
	}

	_, err := fmt.Fprintf(rw.out,
		"%d files: %d clean, %d fixed, %d unreadable, %d failed\n",
		summary.Files,
		summary.Clean,
		summary.Fixed,
		summary.Unreadable,
		summary.Failed,
	)
	if err != nil {
		return fmt.Errorf("report writer: %w", err)
	}
	return nil
}
