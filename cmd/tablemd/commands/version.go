package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tablemd/internal/output"
	"github.com/jmylchreest/tablemd/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				w := output.NewJSONWriter(cmd.OutOrStdout(), true, "  ")
				if err := w.Write(version.Get()); err != nil {
					return err
				}
				return w.Close()
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Full())
			return err
		},
	}

	cmd.Flags().Bool("json", false, "print build information as JSON")
	return cmd
}
