// Package cleaner wraps the table converter, whole-document Markdown
// conversion and passthrough behind one interface, so the CLI can pick
// or chain them by name.
package cleaner

// Cleaner turns HTML into the text the caller wants to keep.
type Cleaner interface {
	// Clean returns the cleaned text. Cleaners that cannot find what they
	// look for return the input unchanged rather than an error.
	Clean(html string) (string, error)

	// Name identifies the cleaner in logs, errors and chain names.
	Name() string
}

var (
	_ Cleaner = (*TableCleaner)(nil)
	_ Cleaner = (*MarkdownCleaner)(nil)
	_ Cleaner = (*NoopCleaner)(nil)
	_ Cleaner = (*ChainCleaner)(nil)
)
