package cleaner

import (
	"github.com/jmylchreest/tablemd/internal/logger"
	"github.com/jmylchreest/tablemd/pkg/tablemd"
)

// TableCleaner converts the first HTML table to a Markdown pipe table.
// Input without an extractable table is returned unchanged.
type TableCleaner struct {
	conv *tablemd.Converter
}

// NewTable creates a table cleaner. A nil converter uses the default config.
func NewTable(conv *tablemd.Converter) *TableCleaner {
	if conv == nil {
		// the default config always validates
		conv, _ = tablemd.New()
	}
	return &TableCleaner{conv: conv}
}

// Clean converts the first table. It never returns an error.
func (c *TableCleaner) Clean(html string) (string, error) {
	return c.CleanWithStats(html).Content, nil
}

// CleanWithStats converts the first table and returns the full result.
func (c *TableCleaner) CleanWithStats(html string) *tablemd.Result {
	result := c.conv.ConvertWithStats(html)
	if !result.Converted {
		logger.Debug("no table extracted, passing input through",
			"strategy", c.conv.Config().Strategy,
			"input_bytes", result.Stats.InputBytes,
			"warnings", len(result.Warnings))
		return result
	}

	logger.Debug("table converted",
		"strategy", c.conv.Config().Strategy,
		"rows", result.Stats.Rows,
		"columns", result.Stats.Columns,
		"header_row", result.Stats.HeaderRow)
	for _, w := range result.Warnings {
		logger.Debug("table warning", "phase", w.Phase, "message", w.Message, "context", w.Context)
	}
	return result
}

// Name returns the cleaner type.
func (c *TableCleaner) Name() string {
	return "table"
}
