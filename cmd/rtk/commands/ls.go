package commands

import (
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [args...]",
	Short: "Directory listing without the noise lines",
	Long: `Proxy to the native ls so every flag keeps working (-l, -a, -h, -R, ...).
With no arguments, defaults to -la. The "total N" header line is dropped;
everything else passes through.`,
	// ls arguments are mostly flags; forward them untouched.
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"-la"}
		}
		return runTool(cmd, "ls", "ls", "ls", args...)
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
