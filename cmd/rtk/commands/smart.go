package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sahilmgandhi/rtk/internal/engine/proc"
	"github.com/sahilmgandhi/rtk/internal/engine/summary"
	"github.com/sahilmgandhi/rtk/internal/platform/logger"
)

// summaryClient is overridable for tests.
var summaryClient func() summary.Client

var smartCmd = &cobra.Command{
	Use:   "smart <command...>",
	Short: "Run a command and summarize its output with an LLM",
	Long: `Run an arbitrary command and condense its output into a short technical
summary. Uses the Gemini API when an API key is configured (llm.api_key_env,
default GEMINI_API_KEY); otherwise falls back to a local heuristic that
keeps failure-shaped lines.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		commandLine := strings.Join(args, " ")

		raw, dur, err := proc.CaptureShell(ctx, "smart", commandLine)
		if err != nil {
			return err
		}
		log.Debug("command captured", "duration_ms", dur.Milliseconds())

		combined := string(raw.Stdout) + string(raw.Stderr)
		client := pickSummarizer()
		text, err := client.Summarize(ctx, commandLine, combined)
		if err != nil {
			// Summarization failure must not hide the output.
			log.Warn("summarization failed, falling back to heuristic", "error", err)
			text, _ = (&summary.Heuristic{}).Summarize(ctx, commandLine, combined)
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)

		if raw.ExitCode != 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ exit %d\n", raw.ExitCode)
			os.Exit(raw.ExitCode)
		}
		return nil
	},
}

// pickSummarizer chooses Gemini when a key is present, heuristic otherwise.
func pickSummarizer() summary.Client {
	if summaryClient != nil {
		return summaryClient()
	}
	keyEnv := appCfg.LLM.APIKeyEnv
	if keyEnv == "" {
		keyEnv = "GEMINI_API_KEY"
	}
	if key := os.Getenv(keyEnv); key != "" {
		return summary.NewGeminiClient(key, appCfg.LLM.Model, nil)
	}
	return &summary.Heuristic{}
}

func init() {
	rootCmd.AddCommand(smartCmd)
}
