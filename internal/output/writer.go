// Package output handles output formatting and writing.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Format represents output format types.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatJSONL    Format = "jsonl"
	FormatYAML     Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatJSON, FormatJSONL, FormatYAML}

// ParseFormat resolves a format name, case-insensitively. "md" is an alias
// for markdown and "yml" for yaml.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	case FormatMarkdown, FormatHTML, FormatJSON, FormatJSONL, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", name)
	}
}

// Structured reports whether the format serializes whole reports rather
// than the converted text.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatJSONL || f == FormatYAML
}

// Writer handles output serialization.
type Writer interface {
	// Write outputs a single result.
	Write(data any) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
	raw    bool
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// WithRaw makes markdown and html writers emit text exactly as given.
// Structured formats ignore it.
func WithRaw(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.raw = enabled
	}
}

// NewWriter creates a writer for the specified format. Markdown and HTML
// share the text writer; the caller decides what text to hand it.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatMarkdown, FormatHTML:
		if cfg.raw {
			return NewRawTextWriter(w), nil
		}
		return NewTextWriter(w), nil
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatJSONL:
		return NewJSONLWriter(w), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
