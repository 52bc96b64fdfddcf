package tablemd

import (
	"fmt"
	"time"
)

// scan is what a strategy hands to the serializer.
type scan struct {
	tables    int
	found     bool // a table fragment was extracted
	fragments int  // row fragments before sanitation
	rows      [][]string
	header    int
	dropped   int
}

type scanner func(input, placeholder string) scan

func scanPattern(input, placeholder string) scan {
	s := scan{header: -1, tables: countTableMarkers(input)}
	fragment, ok := extractTable(input)
	if !ok {
		return s
	}
	s.found = true

	frags := segmentRows(fragment)
	s.fragments = len(frags)
	s.rows, s.header, s.dropped = foldRows(frags, placeholder)
	return s
}

// Converter turns HTML table fragments into Markdown pipe tables.
// A Converter is immutable and safe for concurrent use.
type Converter struct {
	config Config
	scan   scanner
}

var defaultConverter = &Converter{config: DefaultConfig(), scan: scanPattern}

// Convert renders the first table in input as a Markdown pipe table using
// the default config. Input without an extractable table is returned
// unchanged.
func Convert(input string) string {
	return defaultConverter.Convert(input)
}

// New creates a Converter. With no options it behaves like Convert.
func New(opts ...Option) (*Converter, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Converter{config: cfg, scan: scanPattern}
	if cfg.Strategy == StrategyDOM {
		c.scan = scanDOM
	}
	return c, nil
}

// Config returns the converter's resolved config.
func (c *Converter) Config() Config {
	return c.config
}

// Convert renders the first table in input, or returns input unchanged.
func (c *Converter) Convert(input string) string {
	return c.ConvertWithStats(input).Content
}

// ConvertWithStats converts input and reports what was found. Failure to
// extract a table is never an error: Content is the input, Converted is
// false and a warning names the stage that gave up.
func (c *Converter) ConvertWithStats(input string) *Result {
	start := time.Now()
	result := &Result{
		Stats: &Stats{InputBytes: len(input), HeaderRow: -1},
	}

	s := c.scan(input, c.config.Placeholder)
	result.Stats.TablesFound = s.tables
	result.Stats.DroppedRows = s.dropped

	switch {
	case !s.found:
		result.AddWarning(PhaseExtract, "no table found, returning input", "")
	case s.fragments == 0:
		result.AddWarning(PhaseSegment, "table has no rows, returning input", "")
	case len(s.rows) == 0:
		result.AddWarning(PhaseSanitize, "no row has cells, returning input",
			fmt.Sprintf("%d rows", s.fragments))
	default:
		c.fill(result, s)
		result.Stats.Duration = time.Since(start)
		return result
	}

	result.Content = input
	result.Stats.OutputBytes = len(input)
	result.Stats.Duration = time.Since(start)
	return result
}

func (c *Converter) fill(result *Result, s scan) {
	stats := result.Stats

	if s.tables > 1 {
		result.AddWarning(PhaseExtract, "only the first table is converted",
			fmt.Sprintf("%d tables", s.tables))
	}
	if s.dropped > 0 {
		result.AddWarning(PhaseSanitize, "rows without cells dropped",
			fmt.Sprintf("%d rows", s.dropped))
	}

	stats.Rows = len(s.rows)
	stats.HeaderRow = s.header
	ref := 0
	if s.header >= 0 {
		ref = s.header
	}
	stats.Columns = len(s.rows[ref])

	for i, row := range s.rows {
		if len(row) != stats.Columns {
			stats.IrregularRows++
			result.AddWarning(PhaseSerialize,
				fmt.Sprintf("row has %d cells, expected %d", len(row), stats.Columns),
				fmt.Sprintf("row %d", i))
		}
	}

	result.Content = serialize(s.rows, s.header)
	result.Converted = true
	stats.OutputBytes = len(result.Content)
}
