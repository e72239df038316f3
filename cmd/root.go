package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/VasenkovAA/codingutils/internal/errors"
)

var (
	debugFlag   bool
	verboseFlag bool
	logFileFlag string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "codingutils",
	Short: "File-processing utilities for source trees",
	Long: `Utilities for working with local source trees.

codingutils bundles three tools sharing one filtering and traversal
layer: a comment detector/remover (strip), a file merger (merge), and
a project tree visualizer (tree). All three honor ignore files,
exclusion lists, and include globs.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.ExitCodeFor(err).Int())
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Show detailed log output")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Write logs to a file in addition to the console")
}
