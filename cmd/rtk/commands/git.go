package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var gitCmd = &cobra.Command{
	Use:   "git",
	Short: "Condensed git subcommands",
	Long: `Wrap common git subcommands and condense their output. Porcelain status
becomes a grouped summary, logs become one line per commit, diffs keep file
headers and changed lines only. Exit codes pass through.`,
}

var flagGitLogCount int

var gitStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Grouped working tree status",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTool(cmd, "git-status", "git_status", "git", "status", "--porcelain", "--branch")
	},
}

var gitLogCmd = &cobra.Command{
	Use:   "log",
	Short: "One line per commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		gitArgs := append([]string{"log", "--oneline", "-n", strconv.Itoa(flagGitLogCount)}, args...)
		return runTool(cmd, "git-log", "git_log", "git", gitArgs...)
	},
}

var gitDiffCmd = &cobra.Command{
	Use:   "diff [args...]",
	Short: "Condensed diff, file headers and changed lines only",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTool(cmd, "git-diff", "git_diff", "git", append([]string{"diff"}, args...)...)
	},
}

var flagCommitMessage string

var gitCommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit staged changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagCommitMessage == "" {
			return fmt.Errorf("commit message required (-m)")
		}
		gitArgs := append([]string{"commit", "-m", flagCommitMessage}, args...)
		return runTool(cmd, "git-plain", "git_commit", "git", gitArgs...)
	},
}

// plainGitCmd builds a subcommand that forwards to git and renders the
// output as a short confirmation.
func plainGitCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [args...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, "git-plain", "git_"+name, "git", append([]string{name}, args...)...)
		},
	}
}

func init() {
	gitLogCmd.Flags().IntVarP(&flagGitLogCount, "count", "n", 10, "Number of commits to show")
	gitCommitCmd.Flags().StringVarP(&flagCommitMessage, "message", "m", "", "Commit message")

	gitCmd.AddCommand(gitStatusCmd)
	gitCmd.AddCommand(gitLogCmd)
	gitCmd.AddCommand(gitDiffCmd)
	gitCmd.AddCommand(gitCommitCmd)
	gitCmd.AddCommand(plainGitCmd("add", "Stage files"))
	gitCmd.AddCommand(plainGitCmd("push", "Push to remote"))
	gitCmd.AddCommand(plainGitCmd("pull", "Pull from remote"))
	rootCmd.AddCommand(gitCmd)
}
