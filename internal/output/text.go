package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotText is returned when a TextWriter is given something other than
// a string or fmt.Stringer.
var ErrNotText = errors.New("text output needs a string")

// TextWriter writes text items, one blank line between items. Each item
// ends with a newline unless the writer is raw, in which case items are
// written byte for byte with nothing added.
type TextWriter struct {
	w       *bufio.Writer
	raw     bool
	written int
}

// NewTextWriter creates a text writer.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w)}
}

// NewRawTextWriter creates a text writer that adds no separators or
// trailing newlines.
func NewRawTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: bufio.NewWriter(w), raw: true}
}

// Write writes one item.
func (w *TextWriter) Write(data any) error {
	var s string
	switch v := data.(type) {
	case string:
		s = v
	case fmt.Stringer:
		s = v.String()
	default:
		return fmt.Errorf("%w, got %T", ErrNotText, data)
	}

	if w.raw {
		_, err := w.w.WriteString(s)
		return err
	}

	if w.written > 0 {
		if _, err := w.w.WriteString("\n"); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString(s); err != nil {
		return err
	}
	if !strings.HasSuffix(s, "\n") {
		if _, err := w.w.WriteString("\n"); err != nil {
			return err
		}
	}
	w.written++
	return nil
}

// Flush flushes the buffer.
func (w *TextWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *TextWriter) Close() error {
	return w.Flush()
}
