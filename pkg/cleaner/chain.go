package cleaner

import (
	"fmt"
	"strings"

	"github.com/jmylchreest/tablemd/internal/logger"
)

// ChainCleaner feeds each cleaner's output to the next.
type ChainCleaner struct {
	cleaners []Cleaner
}

// NewChain creates a chain applied in the order given. An empty chain
// returns its input.
//
// Example:
//
//	chain := cleaner.NewChain(
//	    cleaner.NewTable(conv),
//	    cleaner.NewNoop(),
//	)
func NewChain(cleaners ...Cleaner) *ChainCleaner {
	return &ChainCleaner{
		cleaners: cleaners,
	}
}

// Clean runs every step. The first failing step stops the chain and is
// named in the returned error.
func (c *ChainCleaner) Clean(content string) (string, error) {
	for i, step := range c.cleaners {
		out, err := step.Clean(content)
		if err != nil {
			return "", fmt.Errorf("chain step %d (%s): %w", i+1, step.Name(), err)
		}
		logger.Debug("chain step done", "step", i+1, "cleaner", step.Name(),
			"in_bytes", len(content), "out_bytes", len(out))
		content = out
	}
	return content, nil
}

// Name returns chain(a->b->...).
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, step := range c.cleaners {
		names[i] = step.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
