package tablemd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Warning phases.
const (
	PhaseExtract   = "extract"
	PhaseSegment   = "segment"
	PhaseSanitize  = "sanitize"
	PhaseSerialize = "serialize"
)

// Stats captures what a conversion found.
type Stats struct {
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// TablesFound counts opening table markers (pattern) or table
	// elements (dom) in the input. Only the first table is converted.
	TablesFound int `json:"tables_found" yaml:"tables_found"`

	Rows    int `json:"rows" yaml:"rows"`
	Columns int `json:"columns" yaml:"columns"` // cells in the header row, or the first row without one

	// HeaderRow is the kept-row index followed by the separator, -1 if none.
	HeaderRow int `json:"header_row" yaml:"header_row"`

	DroppedRows   int `json:"dropped_rows" yaml:"dropped_rows"`
	IrregularRows int `json:"irregular_rows" yaml:"irregular_rows"`

	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %s -> %s\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes))))
	sb.WriteString(fmt.Sprintf("Tables: %d found, first converted\n", s.TablesFound))
	sb.WriteString(fmt.Sprintf("Rows: %d kept, %d dropped, %d irregular\n",
		s.Rows, s.DroppedRows, s.IrregularRows))
	sb.WriteString(fmt.Sprintf("Columns: %d\n", s.Columns))
	if s.HeaderRow >= 0 {
		sb.WriteString(fmt.Sprintf("Header row: %d\n", s.HeaderRow))
	} else {
		sb.WriteString("Header row: none\n")
	}
	sb.WriteString(fmt.Sprintf("Timing: %v\n", s.Duration.Round(time.Microsecond)))

	return sb.String()
}

// Warning represents a non-fatal issue encountered during conversion.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`
	Message string `json:"message" yaml:"message"`
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result contains the output of a conversion.
type Result struct {
	// Content is the Markdown table, or the original input when nothing
	// could be extracted.
	Content string `json:"content" yaml:"content"`

	// Converted is false when Content is the passthrough input.
	Converted bool `json:"converted" yaml:"converted"`

	Stats *Stats `json:"stats" yaml:"stats"`

	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
