package commands

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"
)

var flagFindMax int

// skipDirs are directory names never worth descending into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"__pycache__":  true,
	".venv":        true,
}

var findCmd = &cobra.Command{
	Use:   "find <pattern> [dir]",
	Short: "Compact glob file finder",
	Long: `Find files matching a glob pattern (*.go, **/*_test.go, cmd/**). Matches
against the path relative to the search root; bare patterns without a
slash also match the file name alone. Dependency and VCS directories are
skipped.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pattern := args[0]
		root := "."
		if len(args) == 2 {
			root = args[1]
		}

		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		matchName := !strings.ContainsRune(pattern, '/')

		var matches []string
		total := 0
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil // unreadable entries are skipped, not fatal
			}
			if d.IsDir() {
				if skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				rel = path
			}
			rel = filepath.ToSlash(rel)
			if g.Match(rel) || (matchName && g.Match(d.Name())) {
				total++
				if len(matches) < flagFindMax {
					matches = append(matches, rel)
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("walking %s: %w", root, err)
		}

		if total == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no matches")
			return nil
		}
		for _, m := range matches {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		if total > len(matches) {
			fmt.Fprintf(cmd.OutOrStdout(), "... +%d more (%d total)\n", total-len(matches), total)
		}
		return nil
	},
}

func init() {
	findCmd.Flags().IntVar(&flagFindMax, "max", 50, "Maximum matches to print")
	rootCmd.AddCommand(findCmd)
}
