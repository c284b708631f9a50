// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/ik5/samplechain/audio"
	"github.com/ik5/samplechain/utils"
)

// Duration limits outside of which a file is flagged with a warning.
const (
	MinDuration = 0.01
	MaxDuration = 300.0
)

// ValidationReport describes one file. A report with any Errors is invalid.
type ValidationReport struct {
	Path     string       `json:"file_path" yaml:"file_path"`
	Format   audio.Format `json:"format" yaml:"format"`
	Duration float64      `json:"duration" yaml:"duration"`
	Frames   int          `json:"samples" yaml:"samples"`
	IsValid  bool         `json:"is_valid" yaml:"is_valid"`
	Warnings []string     `json:"warnings" yaml:"warnings"`
	Errors   []error      `json:"-" yaml:"-"`
}

// Validate loads path and reports problems with its content. It never
// returns an error itself; load failures become report errors.
func (l *Loader) Validate(path string) ValidationReport {
	report := ValidationReport{Path: path, Warnings: []string{}}

	buf, src, err := l.Load(path)
	if err != nil {
		report.Errors = append(report.Errors, err)
		return report
	}

	report.Format = src
	report.Frames = buf.Frames()
	report.Duration = buf.Duration()
	report.IsValid = true

	if report.Duration < MinDuration {
		report.Warnings = append(report.Warnings, "very short audio file (< 10ms)")
	}
	if report.Duration > MaxDuration {
		report.Warnings = append(report.Warnings, "very long audio file (> 5 minutes)")
	}

	var nan, inf int
	for _, v := range buf.Samples {
		switch {
		case utils.IsFinite(v):
		case math.IsNaN(v):
			nan++
		default:
			inf++
		}
	}
	if nan > 0 {
		report.Errors = append(report.Errors, fmt.Errorf("%w: %d NaN samples", audio.ErrInvalidAudioData, nan))
	}
	if inf > 0 {
		report.Errors = append(report.Errors, fmt.Errorf("%w: %d infinite samples", audio.ErrInvalidAudioData, inf))
	}
	if len(report.Errors) > 0 {
		report.IsValid = false
	}

	return report
}

// ErrorStrings returns the report errors as text, for printing.
func (r ValidationReport) ErrorStrings() []string {
	out := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		out[i] = err.Error()
	}
	return out
}

// MarshalJSON adds the errors as strings under "errors".
func (r ValidationReport) MarshalJSON() ([]byte, error) {
	type report ValidationReport
	return json.Marshal(struct {
		report
		Errors []string `json:"errors"`
	}{report(r), r.ErrorStrings()})
}
