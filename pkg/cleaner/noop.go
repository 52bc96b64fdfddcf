package cleaner

// NoopCleaner returns its input, for looking at the raw HTML an editor or
// fetcher handed over.
type NoopCleaner struct{}

// NewNoop creates a no-op cleaner.
func NewNoop() *NoopCleaner { return &NoopCleaner{} }

// Clean returns html unchanged.
func (*NoopCleaner) Clean(html string) (string, error) { return html, nil }

// Name returns "noop".
func (*NoopCleaner) Name() string { return "noop" }
