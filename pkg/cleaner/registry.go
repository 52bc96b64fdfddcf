package cleaner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/tablemd/pkg/tablemd"
)

// ErrUnknownCleaner is returned by ByName for names it does not know.
var ErrUnknownCleaner = errors.New("unknown cleaner")

// Names lists the cleaners ByName can build.
var Names = []string{"table", "markdown", "noop"}

// ByName builds a cleaner from a name or a comma-separated list of names.
// A list yields a chain applied in order. conv configures "table"; nil uses
// the default config.
func ByName(names string, conv *tablemd.Converter) (Cleaner, error) {
	parts := strings.Split(names, ",")
	cleaners := make([]Cleaner, 0, len(parts))

	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		switch name {
		case "table":
			cleaners = append(cleaners, NewTable(conv))
		case "markdown":
			cleaners = append(cleaners, NewMarkdown())
		case "noop":
			cleaners = append(cleaners, NewNoop())
		default:
			return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownCleaner, name, strings.Join(Names, ", "))
		}
	}

	if len(cleaners) == 1 {
		return cleaners[0], nil
	}
	return NewChain(cleaners...), nil
}
