package cmd

import (
	"fmt"
	"os"

	"railsearch/pkg/config"
	"railsearch/pkg/exporter"
	"railsearch/pkg/stations"
	"railsearch/pkg/trainline"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export matching itineraries to an ICS calendar file",
	Long:  `Runs a search like the search command but writes the itineraries as calendar events instead of a table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		departure, _ := cmd.Flags().GetString("departure")
		arrival, _ := cmd.Flags().GetString("arrival")
		fromDate, _ := cmd.Flags().GetString("from")
		toDate, _ := cmd.Flags().GetString("to")
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if departure == "" {
			departure = cfg.HomeStation
		}
		if departure == "" || arrival == "" {
			return fmt.Errorf("must specify both --departure and --arrival stations")
		}

		table, err := stations.Open(nil)
		if err != nil {
			return fmt.Errorf("could not load station table: %w", err)
		}

		client := trainline.NewClient()
		client.Logger = newLogger()
		t := trainline.New(client, table)

		var results *trainline.Results
		var searchErr error
		_ = spinner.New().
			Title(fmt.Sprintf("Exporting %s -> %s to %s...", departure, arrival, output)).
			Action(func() {
				results, searchErr = t.Search(trainline.SearchOptions{
					Departure: departure,
					Arrival:   arrival,
					FromDate:  fromDate,
					ToDate:    toDate,
					Currency:  cfg.Currency(trainline.DefaultCurrency),
				})
			}).
			Run()
		if searchErr != nil {
			return fmt.Errorf("search failed: %w", searchErr)
		}

		if results.Len() == 0 {
			return fmt.Errorf("no itineraries found between %s and %s", departure, arrival)
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		route := fmt.Sprintf("%s -> %s", departure, arrival)
		if err := exporter.GenerateICS(route, results, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d itineraries to %s\n", results.Len(), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("departure", "d", "", "Departure station name")
	exportCmd.Flags().StringP("arrival", "a", "", "Arrival station name")
	exportCmd.Flags().String("from", "", "Earliest departure, DD/MM/YYYY HH:MM")
	exportCmd.Flags().String("to", "", "Latest departure, DD/MM/YYYY HH:MM")
	exportCmd.Flags().StringP("output", "o", "itineraries.ics", "Output file path")
	exportCmd.MarkFlagRequired("from")
	exportCmd.MarkFlagRequired("to")
}
