package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"diffpane/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage diffpane configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			if local, _ := cmd.Flags().GetBool("local"); local {
				path = config.LocalConfigPath()
			} else {
				path = config.DefaultConfigPath()
			}
		}
		if path == "" {
			return fmt.Errorf("cannot determine config path")
		}
		if err := config.WriteDefault(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().Bool("local", false,
		"write to .diffpane/config.yaml in the current directory")
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
