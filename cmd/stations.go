package cmd

import (
	"fmt"

	"railsearch/pkg/stations"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Look up stations in the reference table",
	Long: `Searches the trainline-eu station table by name. The table is downloaded
once and cached on disk; use --refresh to force a new download.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		refresh, _ := cmd.Flags().GetBool("refresh")

		if query == "" && !refresh {
			return fmt.Errorf("must specify a name fragment with --query")
		}

		var table *stations.Table
		var err error
		_ = spinner.New().
			Title("Loading station table...").
			Action(func() {
				if refresh {
					table, err = stations.Download(nil)
				} else {
					table, err = stations.Open(nil)
				}
			}).
			Run()
		if err != nil {
			return fmt.Errorf("could not load station table: %w", err)
		}

		if refresh {
			fmt.Printf("✅ Refreshed station table (%d stations).\n", table.Len())
			if query == "" {
				return nil
			}
		}

		matches := table.Search(query)
		if len(matches) == 0 {
			fmt.Printf("No stations matching %q.\n", query)
			return nil
		}

		titleCase := cases.Title(language.French)
		fmt.Printf("\n--- 📍 %d stations matching %q ---\n", len(matches), query)
		for _, s := range matches {
			fmt.Printf("  • %s (id: %s)\n", titleCase.String(s.Name), s.ID)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(stationsCmd)

	stationsCmd.Flags().StringP("query", "q", "", "Name fragment to search for")
	stationsCmd.Flags().Bool("refresh", false, "Force a fresh download of the station table")
}
