package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sahilmgandhi/rtk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		out, err := config.Show(appCfg)
		if err != nil {
			return err
		}
		path, _ := config.Path()
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, out)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file if none exists",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, created, err := config.CreateDefault()
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "✅ Wrote %s\n", path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "⚡ Config already exists at %s\n", path)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
