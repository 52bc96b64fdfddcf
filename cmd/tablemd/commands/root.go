// Package commands implements the CLI commands for tablemd.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/tablemd/internal/logger"
	"github.com/jmylchreest/tablemd/internal/version"
)

// NewRootCmd builds the command tree. Each call gets its own viper
// instance so commands can be executed more than once in a process.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "tablemd",
		Short: "Convert HTML tables to GitHub-flavoured Markdown",
		Long: `tablemd turns the first HTML table in its input into a Markdown
pipe table. Input without a table is written back unchanged.

Examples:
  # Convert a fragment from stdin
  echo '<table><tr><th>A</th></tr><tr><td>1</td></tr></table>' | tablemd convert

  # Convert the first table on a page, with stats on stderr
  tablemd convert https://example.com/prices --stats

  # Parse the table with an HTML parser instead of patterns
  tablemd convert page.html --strategy dom -o table.md

  # Check how the Markdown renders
  tablemd convert page.html | tablemd preview`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.tablemd.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("max-input-size", "10MB", "max input size (e.g., 512KB, 1MB, 0=unlimited)")
	bindFlags(v, flags, "debug", "quiet", "log-level", "max-input-size")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		cfgFile, _ := flags.GetString("config")
		if err := initConfig(v, cfgFile); err != nil {
			return err
		}

		level := v.GetString("log_level")
		if _, err := logger.ParseLevel(level); err != nil {
			return err
		}
		logger.Init(logger.Options{
			Debug:  v.GetBool("debug"),
			Quiet:  v.GetBool("quiet"),
			Level:  level,
			Output: cmd.ErrOrStderr(),
		})
		logger.Debug("config loaded", "file", v.ConfigFileUsed())
		return nil
	}

	rootCmd.AddCommand(
		newConvertCmd(v),
		newPreviewCmd(v),
		newCompareCmd(v),
		newVersionCmd(),
	)
	return rootCmd
}

func initConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigName(".tablemd")
		v.SetConfigType("yaml")
	}

	// Environment variables
	v.SetEnvPrefix("TABLEMD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// A missing default config file is fine, a missing explicit one is not.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// bindFlags binds each named flag to the viper key with dashes turned into
// underscores, so config files and env vars use max_input_size style keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}
}

// Execute runs the root command.
func Execute() error {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		logError("%v", err)
		return err
	}
	return nil
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
