// Package commands implements the CLI commands for rtk.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sahilmgandhi/rtk/internal/config"
	"github.com/sahilmgandhi/rtk/internal/engine/registry"
	"github.com/sahilmgandhi/rtk/internal/platform/logger"
)

// Global flag values accessible to all commands.
var (
	flagVerbose int
	flagNoTrack bool
	flagTee     bool
)

// Shared state set up once in PersistentPreRunE.
var (
	appCfg *config.Config
	reg    *registry.Registry
)

// rootCmd is the base command for the rtk CLI.
var rootCmd = &cobra.Command{
	Use:   "rtk",
	Short: "Token-minimizing command proxy",
	Long: `rtk wraps noisy developer commands (git, go test, pytest, docker, linters)
and condenses their output into a few lines, so coding agents spend tokens
on signal instead of build noise. Exit codes pass through untouched; when
rtk cannot make sense of the output it shows the raw text instead of
guessing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		l := logger.New(flagVerbose)
		ctx := logger.WithContext(cmd.Context(), l)
		cmd.SetContext(ctx)

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagNoTrack {
			cfg.Track.Enabled = false
		}
		if flagTee {
			cfg.Tee.Enabled = true
		}
		appCfg = cfg

		reg = registry.NewWithBuiltins()
		if dir, err := config.Dir(); err == nil {
			overrides := filepath.Join(dir, "tools.yaml")
			if _, statErr := os.Stat(overrides); statErr == nil {
				if loadErr := registry.LoadOverrides(reg, overrides); loadErr != nil {
					l.Warn("ignoring tool overrides", "path", overrides, "error", loadErr)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "Increase log verbosity (-v info, -vv debug)")
	rootCmd.PersistentFlags().BoolVar(&flagNoTrack, "no-track", false, "Skip recording this invocation in the usage store")
	rootCmd.PersistentFlags().BoolVar(&flagTee, "tee", false, "Force spilling raw output to the tee directory")
}

// Execute runs the root command. Returns an error if the command fails.
func Execute() error {
	return rootCmd.Execute()
}
