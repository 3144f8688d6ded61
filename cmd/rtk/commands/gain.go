package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sahilmgandhi/rtk/internal/tracking"
)

var (
	flagGainHistory int
	flagGainGraph   bool
)

var gainCmd = &cobra.Command{
	Use:   "gain",
	Short: "Show accumulated token savings",
	Long: `Report how many tokens rtk has saved: totals, a per-command table, and
optionally a daily graph or recent invocation history. Token counts are
estimated at four bytes per token.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := tracking.Open(appCfg.Track.Path)
		if err != nil {
			return fmt.Errorf("opening usage store: %w", err)
		}
		defer store.Close()

		out := cmd.OutOrStdout()

		if flagGainHistory > 0 {
			entries, err := store.Recent(flagGainHistory)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "no recorded invocations yet")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %-12s %-11s %8s tokens  %5.1f%%\n",
					e.TS.Format("2006-01-02 15:04"),
					e.Tool, e.Tier,
					humanize.Comma(e.SavedTokens), e.SavingsPct)
			}
			return nil
		}

		sum, err := store.Summary()
		if err != nil {
			return err
		}
		if sum.TotalCommands == 0 {
			fmt.Fprintln(out, "no recorded invocations yet")
			return nil
		}

		fmt.Fprintf(out, "💰 %s tokens saved across %s commands (%.1f%% average)\n",
			humanize.Comma(sum.SavedTokens),
			humanize.Comma(int64(sum.TotalCommands)),
			sum.AvgSavingsPct)
		fmt.Fprintf(out, "   raw %s → condensed %s\n",
			humanize.Bytes(uint64(sum.TotalInput)),
			humanize.Bytes(uint64(sum.TotalOutput)))

		if len(sum.ByTool) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-16s %6s %12s %8s\n", "tool", "runs", "saved", "avg")
			for _, t := range sum.ByTool {
				fmt.Fprintf(out, "%-16s %6d %12s %7.1f%%\n",
					t.Tool, t.Count, humanize.Comma(t.SavedTokens), t.AvgSavingsPct)
			}
		}

		if flagGainGraph && len(sum.ByDay) > 0 {
			fmt.Fprintln(out)
			renderDailyGraph(out, sum.ByDay)
		}
		return nil
	},
}

// renderDailyGraph prints a bar per day scaled to the best day.
func renderDailyGraph(out io.Writer, days []tracking.DayStats) {
	const width = 40
	var max int64
	for _, d := range days {
		if d.SavedTokens > max {
			max = d.SavedTokens
		}
	}
	if max <= 0 {
		max = 1
	}
	for _, d := range days {
		n := int(d.SavedTokens * width / max)
		if n < 0 {
			n = 0
		}
		fmt.Fprintf(out, "%s %-*s %s\n", d.Day, width, strings.Repeat("█", n), humanize.Comma(d.SavedTokens))
	}
}

func init() {
	gainCmd.Flags().IntVar(&flagGainHistory, "history", 0, "Show the last N invocations instead of totals")
	gainCmd.Flags().BoolVar(&flagGainGraph, "graph", false, "Show a daily savings graph")
	rootCmd.AddCommand(gainCmd)
}
