package cleaner

import (
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// MarkdownCleaner converts a whole HTML document to Markdown using
// html-to-markdown. Unlike TableCleaner it keeps every element, all tables
// included, and never passes the input through unchanged.
type MarkdownCleaner struct {
	conv *converter.Converter
}

// NewMarkdown creates a new Markdown cleaner.
func NewMarkdown() *MarkdownCleaner {
	return &MarkdownCleaner{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Clean converts html to Markdown with at most one blank line between
// blocks.
func (c *MarkdownCleaner) Clean(html string) (string, error) {
	markdown, err := c.conv.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("html to markdown: %w", err)
	}
	return cleanWhitespace(markdown), nil
}

// Name returns "markdown".
func (c *MarkdownCleaner) Name() string {
	return "markdown"
}

// cleanWhitespace trims s and folds runs of blank or whitespace-only lines
// into one blank line.
func cleanWhitespace(s string) string {
	var sb strings.Builder
	blank := false
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		if strings.TrimSpace(line) == "" {
			blank = true
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
			if blank {
				sb.WriteByte('\n')
			}
		}
		blank = false
		sb.WriteString(line)
	}
	return sb.String()
}
