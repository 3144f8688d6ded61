package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sahilmgandhi/rtk/internal/platform/logger"
)

const instructionsMarker = "## rtk — condensed command output"

const instructions = `## rtk — condensed command output

Prefix noisy commands with rtk to get condensed output and identical exit
codes:

- ` + "`rtk ls`" + ` — directory listing without noise lines
- ` + "`rtk git status`" + ` / ` + "`rtk git log`" + ` / ` + "`rtk git diff`" + ` — grouped status, one-line log, compact diff
- ` + "`rtk test ./...`" + ` — go test failures only; ` + "`rtk pytest`" + ` for pytest
- ` + "`rtk err <cmd>`" + ` — keep only errors and warnings from any command
- ` + "`rtk lint <cmd>`" + ` — SARIF linter findings grouped by file
- ` + "`rtk log <file>`" + ` — deduplicate repeated log lines
- ` + "`rtk read <file>`" + ` — source with comments/bodies filtered
- ` + "`rtk find '<glob>'`" + ` — compact file finder
- ` + "`rtk gain`" + ` — tokens saved so far

When rtk shows "⚠ partial parse" or raw output, the underlying tool output
was unusual; rerun the bare command if you need every line.
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Add rtk usage instructions to CLAUDE.md",
	Long: `Append a short rtk usage section to the project's CLAUDE.md so coding
agents pick up the condensed commands. Creates the file if missing; does
nothing if the section is already present.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := logger.FromContext(cmd.Context())

		const path = "CLAUDE.md"
		existing, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if strings.Contains(string(existing), instructionsMarker) {
			fmt.Fprintf(cmd.OutOrStdout(), "⚡ %s already mentions rtk. Skipping.\n", path)
			return nil
		}

		content := string(existing)
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		if content != "" {
			content += "\n"
		}
		content += instructions

		if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 -- project doc, not sensitive
			return fmt.Errorf("writing %s: %w", path, err)
		}

		log.Info("instructions written", "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "✅ rtk instructions added to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
