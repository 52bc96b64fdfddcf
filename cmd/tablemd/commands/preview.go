package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tablemd/internal/logger"
	"github.com/jmylchreest/tablemd/internal/output"
	"github.com/jmylchreest/tablemd/pkg/tablemd"
)

func newPreviewCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [file|-]",
		Short: "Render Markdown as HTML",
		Long: `Preview renders GitHub-flavoured Markdown, tables included, as HTML.
It reads a file, or stdin when no argument or "-" is given.

Examples:
  tablemd convert page.html | tablemd preview > table.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd, v, args)
		},
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	return cmd
}

func runPreview(cmd *cobra.Command, v *viper.Viper, args []string) error {
	limit, err := parseSize(v.GetString("max_input_size"))
	if err != nil {
		return err
	}

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	in, err := readLocal(cmd.InOrStdin(), arg, limit)
	if err != nil {
		return err
	}

	rendered, err := tablemd.RenderHTML(in.Text)
	if err != nil {
		return err
	}
	logger.Debug("markdown rendered", "source", in.Source, "bytes", len(rendered))

	out := cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	w := output.NewTextWriter(out)
	if err := w.Write(rendered); err != nil {
		return err
	}
	return w.Close()
}
