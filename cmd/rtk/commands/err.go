package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

var errCmd = &cobra.Command{
	Use:   "err <command...>",
	Short: "Run a command and keep only errors and warnings",
	Long: `Run an arbitrary command through the generic diagnostic matcher. Compiler
and linter style lines (file:line:col, severity keywords, rule codes) are
extracted and grouped by file; everything else is dropped. If nothing
matches, raw output is shown instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd, "generic", "err", strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(errCmd)
}
