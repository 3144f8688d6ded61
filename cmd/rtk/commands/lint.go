package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

var lintCmd = &cobra.Command{
	Use:   "lint <command...>",
	Short: "Run a SARIF-emitting linter and group findings by file",
	Long: `Run a linter that writes SARIF to stdout (eslint --format sarif,
golangci-lint run --out-format sarif, semgrep --sarif, ...) and condense
the report into per-file groups. Non-SARIF output falls back to the
generic diagnostic matcher.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd, "sarif", "lint", strings.Join(args, " "))
	},
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
