package cmd

import (
	"fmt"

	"railsearch/pkg/config"
	"railsearch/pkg/stations"
	"railsearch/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage railsearch configuration",
	Long:  "View or edit your local settings (default currency, home station, default passenger).",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		setHome, _ := cmd.Flags().GetString("set-home")
		if setHome != "" {
			// Verify the station exists before persisting it
			table, err := stations.Open(nil)
			if err != nil {
				return fmt.Errorf("could not load station table: %w", err)
			}
			if _, err := table.Find(setHome); err != nil {
				return err
			}

			cfg.HomeStation = setHome
			if err := config.Save(cfg); err != nil {
				return err
			}

			fmt.Printf("✅ Home station saved as: %s\n", setHome)
			return nil
		}

		// If no flags are given, launch the interactive settings flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("set-home", "s", "", "Set your home station for search defaults")
}
