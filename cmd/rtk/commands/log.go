package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
)

var logCmd = &cobra.Command{
	Use:   "log [file]",
	Short: "Deduplicate a log file or stdin",
	Long: `Collapse repeated log lines into one entry with a repeat count.
Reads the given file, or stdin when no file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading log file: %w", err)
			}
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}
		}

		raw := parse.RawOutput{Stdout: data, Tool: "log"}
		return emit(cmd, raw, time.Duration(0), "log")
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
}
