// Package report renders aggregated results as an operator-readable text
// summary and a machine-readable JSON artifact.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arunsingh/query-tool-statuspage/internal/aggregate"
)

// Entry is one element of the JSON report artifact.
type Entry struct {
	Application   string  `json:"application"`
	Version       string  `json:"version"`
	TotalRequests uint64  `json:"total_requests"`
	TotalSuccess  uint64  `json:"total_success"`
	SuccessRate   float64 `json:"success_rate"`
	Links         Links   `json:"links"`
}

// Links carries the self-referential locator for one report entry.
type Links struct {
	Self string `json:"self"`
}

// Writer renders a result set to a text stream and a JSON file.
type Writer struct {
	out  io.Writer
	path string
}

// NewWriter creates a [Writer] that prints the text summary to out and
// writes the JSON artifact to path.
func NewWriter(out io.Writer, path string) *Writer {
	return &Writer{out: out, path: path}
}

// Write renders both report forms.
//
// The text summary shows one line per result with the success rate to two
// decimal places and the raw totals. The JSON artifact is an indented
// array of [Entry] values; an empty result set still produces a valid
// empty array.
func (w *Writer) Write(results []aggregate.Result) error {
	banner := strings.Repeat("=", 60)
	fmt.Fprintln(w.out, banner)
	fmt.Fprintln(w.out, "SUCCESS RATE REPORT")
	fmt.Fprintln(w.out, banner)

	for _, res := range results {
		fmt.Fprintf(w.out, "%s (v%s): Success Rate=%.2f (Requests=%d, Success=%d)\n",
			res.Application, res.Version, res.SuccessRate, res.TotalRequests, res.TotalSuccess)
	}

	entries := make([]Entry, 0, len(results))
	for _, res := range results {
		entries = append(entries, Entry{
			Application:   res.Application,
			Version:       res.Version,
			TotalRequests: res.TotalRequests,
			TotalSuccess:  res.TotalSuccess,
			SuccessRate:   res.SuccessRate,
			Links: Links{
				Self: fmt.Sprintf("/apps/%s/%s/info", res.Application, res.Version),
			},
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(w.path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	fmt.Fprintf(w.out, "\nWrote JSON report to %s\n", w.path)
	return nil
}
