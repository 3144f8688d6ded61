package commands

import (
	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test [packages...]",
	Short: "Run go test and show failures only",
	Long: `Run go test with JSON output and condense the event stream: failing
tests with their output, then a pass/fail/skip summary line. A fully green
run collapses to a single line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"./..."}
		}
		goArgs := append([]string{"test", "-json"}, args...)
		return runTool(cmd, "go-test", "go_test", "go", goArgs...)
	},
}

var pytestCmd = &cobra.Command{
	Use:   "pytest [args...]",
	Short: "Run pytest and show failures only",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "pytest", "pytest", "pytest", args...)
	},
}

func init() {
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(pytestCmd)
}
