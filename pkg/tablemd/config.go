package tablemd

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Strategy selects how table markup is scanned.
type Strategy string

const (
	// StrategyPattern matches table, section, row and cell markers with
	// regular expressions. Inner markup other than <p> is kept verbatim.
	StrategyPattern Strategy = "pattern"

	// StrategyDOM parses the input into a DOM and reads the first table's
	// own rows. Cell text has tags stripped and entities decoded, and
	// nested tables do not contribute rows.
	StrategyDOM Strategy = "dom"
)

// ErrInvalidConfig is returned by New when the resolved Config fails validation.
var ErrInvalidConfig = errors.New("invalid converter config")

// Config holds converter settings.
type Config struct {
	// Strategy is the scanning strategy, "pattern" or "dom".
	Strategy Strategy `json:"strategy" yaml:"strategy" validate:"required,oneof=pattern dom"`

	// Placeholder replaces cells whose text is empty after trimming.
	Placeholder string `json:"placeholder" yaml:"placeholder" validate:"required"`
}

// DefaultConfig returns the pattern strategy with a single space placeholder.
func DefaultConfig() Config {
	return Config{
		Strategy:    StrategyPattern,
		Placeholder: DefaultPlaceholder,
	}
}

// Validate checks the config against its validation tags.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Option configures a Converter.
type Option func(*Config)

// WithStrategy sets the scanning strategy.
func WithStrategy(s Strategy) Option {
	return func(c *Config) {
		c.Strategy = s
	}
}

// WithPlaceholder sets the text written for empty cells.
func WithPlaceholder(p string) Option {
	return func(c *Config) {
		c.Placeholder = p
	}
}

// WithConfig replaces the whole config. Options applied after it still win.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}
