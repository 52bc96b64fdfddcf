package output

import (
	"bufio"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLWriter buffers items and writes them as one YAML document on Flush.
type YAMLWriter struct {
	w     *bufio.Writer
	items []any

	flushed bool
}

// NewYAMLWriter creates a YAML writer.
func NewYAMLWriter(w io.Writer) *YAMLWriter {
	return &YAMLWriter{
		w:     bufio.NewWriter(w),
		items: make([]any, 0),
	}
}

// Write buffers a single item.
func (w *YAMLWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

// Flush writes the buffered items and empties the buffer. Once something
// has been written, flushing an empty buffer writes nothing. A lone item is
// written directly, several as a sequence.
func (w *YAMLWriter) Flush() error {
	if w.flushed && len(w.items) == 0 {
		return w.w.Flush()
	}

	var v any = w.items
	if len(w.items) == 1 {
		v = w.items[0]
	}

	encoder := yaml.NewEncoder(w.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}

	w.items = w.items[:0]
	w.flushed = true
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *YAMLWriter) Close() error {
	return w.Flush()
}
