package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tablemd/pkg/cleaner"
	"github.com/jmylchreest/tablemd/pkg/tablemd"
)

type candidate struct {
	name    string
	cleaner cleaner.Cleaner
}

func newCompareCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "compare [file|url|-]",
		Short: "Compare strategies and cleaners on the same input",
		Long: `Compare runs every extraction strategy and cleaner over one input and
prints a summary line for each, to show where pattern and DOM extraction
disagree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := parseSize(v.GetString("max_input_size"))
			if err != nil {
				return err
			}

			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			in, err := readInput(cmd.Context(), cmd.InOrStdin(), v, arg, limit)
			if err != nil {
				return err
			}

			candidates, err := compareCandidates()
			if err != nil {
				return err
			}
			return runCompare(cmd.OutOrStdout(), in, candidates)
		},
	}
}

func compareCandidates() ([]candidate, error) {
	candidates := []candidate{
		{"noop", cleaner.NewNoop()},
		{"markdown", cleaner.NewMarkdown()},
	}
	for _, s := range []tablemd.Strategy{tablemd.StrategyPattern, tablemd.StrategyDOM} {
		conv, err := tablemd.New(tablemd.WithStrategy(s))
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate{"table (" + string(s) + ")", cleaner.NewTable(conv)})
	}
	return candidates, nil
}

func runCompare(w io.Writer, in input, candidates []candidate) error {
	fmt.Fprintf(w, "Input: %s (%s)\n\n", in.Source, humanize.Bytes(uint64(len(in.Text))))
	fmt.Fprintf(w, "%-18s %10s %5s %5s %6s %5s %10s\n", "Cleaner", "Output", "Rows", "Cols", "Header", "Warn", "Time")
	fmt.Fprintf(w, "%-18s %10s %5s %5s %6s %5s %10s\n", "-------", "------", "----", "----", "------", "----", "----")

	for _, c := range candidates {
		start := time.Now()

		if sc, ok := c.cleaner.(statsCleaner); ok {
			res := sc.CleanWithStats(in.Text)
			header := "none"
			if res.Stats.HeaderRow >= 0 {
				header = strconv.Itoa(res.Stats.HeaderRow)
			}
			fmt.Fprintf(w, "%-18s %10s %5d %5d %6s %5d %10v\n",
				c.name, humanize.Bytes(uint64(len(res.Content))),
				res.Stats.Rows, res.Stats.Columns, header, len(res.Warnings),
				time.Since(start).Round(time.Microsecond))
			continue
		}

		out, err := c.cleaner.Clean(in.Text)
		duration := time.Since(start).Round(time.Microsecond)
		if err != nil {
			fmt.Fprintf(w, "%-18s %10s %5s %5s %6s %5s %10v (error: %v)\n",
				c.name, "ERROR", "-", "-", "-", "-", duration, err)
			continue
		}
		fmt.Fprintf(w, "%-18s %10s %5s %5s %6s %5s %10v\n",
			c.name, humanize.Bytes(uint64(len(out))), "-", "-", "-", "-", duration)
	}
	return nil
}
