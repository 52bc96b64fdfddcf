package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter buffers items and writes them on Flush: a lone item as an
// object, several as an array.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
	indent string
	items  []any

	flushed bool
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool, indent string) *JSONWriter {
	return &JSONWriter{
		w:      bufio.NewWriter(w),
		pretty: pretty,
		indent: indent,
		items:  make([]any, 0),
	}
}

// Write buffers a single item.
func (w *JSONWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

// Flush writes the buffered items and empties the buffer. Once something
// has been written, flushing an empty buffer writes nothing.
func (w *JSONWriter) Flush() error {
	if w.flushed && len(w.items) == 0 {
		return w.w.Flush()
	}

	var v any = w.items
	if len(w.items) == 1 {
		v = w.items[0]
	}

	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", w.indent)
	}
	if err := enc.Encode(v); err != nil {
		return err
	}

	w.items = w.items[:0]
	w.flushed = true
	return w.w.Flush()
}

// Close flushes and closes the writer.
func (w *JSONWriter) Close() error {
	return w.Flush()
}

// JSONLWriter writes newline-delimited JSON (JSONL), one line per Write.
type JSONLWriter struct {
	w *bufio.Writer
}

// NewJSONLWriter creates a JSONL writer.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{
		w: bufio.NewWriter(w),
	}
}

// Write writes a single item as a JSON line.
func (w *JSONLWriter) Write(data any) error {
	enc := json.NewEncoder(w.w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return w.w.Flush()
}

// Flush flushes the buffer.
func (w *JSONLWriter) Flush() error {
	return w.w.Flush()
}

// Close flushes the writer.
func (w *JSONLWriter) Close() error {
	return w.Flush()
}
