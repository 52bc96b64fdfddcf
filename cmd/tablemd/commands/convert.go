package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tablemd/internal/logger"
	"github.com/jmylchreest/tablemd/internal/output"
	"github.com/jmylchreest/tablemd/pkg/cleaner"
	"github.com/jmylchreest/tablemd/pkg/fetcher"
	"github.com/jmylchreest/tablemd/pkg/tablemd"
)

// report is the structured output of convert.
type report struct {
	Source    string            `json:"source" yaml:"source"`
	Title     string            `json:"title,omitempty" yaml:"title,omitempty"`
	FetchedAt string            `json:"fetched_at,omitempty" yaml:"fetched_at,omitempty"`
	Cleaner   string            `json:"cleaner" yaml:"cleaner"`
	Strategy  tablemd.Strategy  `json:"strategy" yaml:"strategy"`
	Content   string            `json:"content" yaml:"content"`
	Converted *bool             `json:"converted,omitempty" yaml:"converted,omitempty"`
	Stats     *tablemd.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings  []tablemd.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// statsCleaner is a cleaner that can report conversion stats.
type statsCleaner interface {
	cleaner.Cleaner
	CleanWithStats(html string) *tablemd.Result
}

func newConvertCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file|url|-]",
		Short: "Convert the first HTML table to a Markdown pipe table",
		Long: `Convert reads HTML from a file, an http(s) URL or stdin (no argument
or "-") and writes the first table as a GitHub-flavoured Markdown table.

Input without a table is written back byte for byte in the markdown
format. Empty or whitespace-only input is an error. Only the first table
is converted; row and column spans are not interpreted.

Examples:
  tablemd convert fragment.html
  tablemd convert https://example.com/prices --format json
  tablemd convert - --strategy dom --stats < page.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, v, args)
		},
	}

	flags := cmd.Flags()

	// Output settings
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.StringP("format", "f", string(output.FormatMarkdown), "output format: markdown, html, json, jsonl, yaml")
	flags.Bool("stats", false, "print conversion stats and warnings to stderr")

	// Conversion settings
	flags.String("strategy", string(tablemd.StrategyPattern), "table extraction strategy: pattern, dom")
	flags.String("cleaner", "table", "cleaner, or comma-separated chain: "+strings.Join(cleaner.Names, ", "))

	// Fetch settings
	flags.Duration("timeout", 30*time.Second, "request timeout for URL input")
	flags.String("user-agent", "", "user agent for URL input")

	bindFlags(v, flags, "format", "strategy", "cleaner", "timeout", "user-agent")
	return cmd
}

func runConvert(cmd *cobra.Command, v *viper.Viper, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Debug("convert command starting")

	format, err := output.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}

	limit, err := parseSize(v.GetString("max_input_size"))
	if err != nil {
		return err
	}

	strategy := tablemd.Strategy(strings.ToLower(strings.TrimSpace(v.GetString("strategy"))))
	conv, err := tablemd.New(tablemd.WithStrategy(strategy))
	if err != nil {
		return err
	}

	cl, err := cleaner.ByName(v.GetString("cleaner"), conv)
	if err != nil {
		return err
	}
	logger.Debug("convert configured", "cleaner", cl.Name(), "strategy", strategy, "format", format, "max_input_size", limit)

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	in, err := readInput(ctx, cmd.InOrStdin(), v, arg, limit)
	if err != nil {
		return err
	}
	logger.Debug("input read", "source", in.Source, "bytes", len(in.Text))

	var result *tablemd.Result
	content := ""
	if sc, ok := cl.(statsCleaner); ok {
		result = sc.CleanWithStats(in.Text)
		content = result.Content
		if !result.Converted {
			logger.Warn("no table converted, writing input unchanged", "source", in.Source)
		}
	} else {
		content, err = cl.Clean(in.Text)
		if err != nil {
			return fmt.Errorf("%s cleaner failed: %w", cl.Name(), err)
		}
	}

	if stats, _ := cmd.Flags().GetBool("stats"); stats {
		printStats(cmd.ErrOrStderr(), in.Source, cl, result)
	}

	out := cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	// Unchanged input goes back byte for byte.
	writer, err := output.NewWriter(out, format, output.WithRaw(format == output.FormatMarkdown && content == in.Text))
	if err != nil {
		return err
	}

	switch {
	case format == output.FormatHTML:
		rendered, err := tablemd.RenderHTML(content)
		if err != nil {
			return err
		}
		if err := writer.Write(rendered); err != nil {
			return err
		}
	case format.Structured():
		if err := writer.Write(newReport(in, cl.Name(), strategy, content, result)); err != nil {
			return err
		}
	default:
		if err := writer.Write(content); err != nil {
			return err
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Debug("convert complete", "source", in.Source, "output_bytes", len(content))
	return nil
}

func readInput(ctx context.Context, stdin io.Reader, v *viper.Viper, arg string, limit int) (input, error) {
	if isURL(arg) {
		return fetchInput(ctx, arg, fetcher.StaticConfig{
			UserAgent: v.GetString("user_agent"),
			Timeout:   v.GetDuration("timeout"),
		}, limit)
	}
	return readLocal(stdin, arg, limit)
}

func newReport(in input, cleanerName string, strategy tablemd.Strategy, content string, result *tablemd.Result) report {
	r := report{
		Source:   in.Source,
		Title:    in.Title,
		Cleaner:  cleanerName,
		Strategy: strategy,
		Content:  content,
	}
	if !in.FetchedAt.IsZero() {
		r.FetchedAt = in.FetchedAt.Format(time.RFC3339)
	}
	if result != nil {
		r.Converted = &result.Converted
		r.Stats = result.Stats
		r.Warnings = result.Warnings
	}
	return r
}

func printStats(w io.Writer, source string, cl cleaner.Cleaner, result *tablemd.Result) {
	if result == nil {
		logger.Warn("stats are only reported by the table cleaner", "cleaner", cl.Name())
		return
	}

	fmt.Fprintf(w, "Source: %s\n", source)
	fmt.Fprint(w, result.Stats.String())
	if result.HasWarnings() {
		fmt.Fprintf(w, "Warnings:\n")
		for _, warning := range result.Warnings {
			fmt.Fprintf(w, "  %s\n", warning.String())
		}
	}
}
