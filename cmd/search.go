package cmd

import (
	"fmt"
	"os"

	"railsearch/pkg/config"
	"railsearch/pkg/stations"
	"railsearch/pkg/trainline"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search itineraries between two stations over a departure window",
	Long: `Search covers the whole departure window with as many API queries as
needed, removes duplicate itineraries, applies your filters and prints the
result as a semicolon-separated table sorted by departure time.`,
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

		travelClass, _ := cmd.Flags().GetString("class")
		if travelClass == "" {
			travelClass = cfg.DefaultTravelClass
		}

		passengers, err := passengersFromFlags(cmd, cfg)
		if err != nil {
			return err
		}
		filters, err := filtersFromFlags(cmd)
		if err != nil {
			return err
		}

		var table *stations.Table
		var loadErr error
		_ = spinner.New().
			Title("Loading station table...").
			Action(func() {
				table, loadErr = stations.Open(nil)
			}).
			Run()
		if loadErr != nil {
			return fmt.Errorf("could not load station table: %w", loadErr)
		}

		client := trainline.NewClient()
		client.Logger = newLogger()
		t := trainline.New(client, table)

		var results *trainline.Results
		var searchErr error
		_ = spinner.New().
			Title(fmt.Sprintf("Searching %s -> %s from %s to %s...", departure, arrival, fromDate, toDate)).
			Action(func() {
				results, searchErr = t.Search(trainline.SearchOptions{
					Departure:   departure,
					Arrival:     arrival,
					FromDate:    fromDate,
					ToDate:      toDate,
					Passengers:  passengers,
					Currency:    cfg.Currency(trainline.DefaultCurrency),
					TravelClass: travelClass,
					Filters:     filters,
				})
			}).
			Run()
		if searchErr != nil {
			return fmt.Errorf("search failed: %w", searchErr)
		}

		if results.Len() == 0 {
			fmt.Println("No itineraries matched your search.")
			return nil
		}

		if output != "" {
			if err := os.WriteFile(output, []byte(results.CSV()), 0644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Printf("Wrote %d itineraries to %s\n", results.Len(), output)
			return nil
		}

		fmt.Print(results.CSV())
		return nil
	},
}

// passengersFromFlags builds the traveller list from repeated --passenger
// birthdates; without the flag the library falls back to one adult.
func passengersFromFlags(cmd *cobra.Command, cfg *config.AppConfig) ([]*trainline.Passenger, error) {
	birthdates, _ := cmd.Flags().GetStringArray("passenger")
	cards, _ := cmd.Flags().GetStringSlice("card")

	if len(birthdates) == 0 && cfg.DefaultBirthdate != "" {
		birthdates = []string{cfg.DefaultBirthdate}
	}
	if len(birthdates) == 0 {
		return nil, nil
	}

	var cardRefs []trainline.Card
	for _, ref := range cards {
		cardRefs = append(cardRefs, trainline.Card{Reference: ref})
	}

	var passengers []*trainline.Passenger
	for _, birthdate := range birthdates {
		p, err := trainline.NewPassenger(birthdate, cardRefs)
		if err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, nil
}

func filtersFromFlags(cmd *cobra.Command) (trainline.Filters, error) {
	minPrice, _ := cmd.Flags().GetFloat64("min-price")
	maxPrice, _ := cmd.Flags().GetFloat64("max-price")
	mean, _ := cmd.Flags().GetString("transportation-mean")
	minSegments, _ := cmd.Flags().GetInt("min-segments")
	maxSegments, _ := cmd.Flags().GetInt("max-segments")
	bikeWith, _ := cmd.Flags().GetBool("bicycle-with-reservation-only")
	bikeWithout, _ := cmd.Flags().GetBool("bicycle-without-reservation-only")
	bikeAny, _ := cmd.Flags().GetBool("bicycle")

	active := 0
	for _, b := range []bool{bikeWith, bikeWithout, bikeAny} {
		if b {
			active++
		}
	}
	if active > 1 {
		return trainline.Filters{}, fmt.Errorf("the bicycle flags are mutually exclusive")
	}

	return trainline.Filters{
		MinPrice:                        minPrice,
		MaxPrice:                        maxPrice,
		TransportationMean:              mean,
		MinSegments:                     minSegments,
		MaxSegments:                     maxSegments,
		BicycleWithReservationOnly:      bikeWith,
		BicycleWithoutReservationOnly:   bikeWithout,
		BicycleWithOrWithoutReservation: bikeAny,
	}, nil
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("departure", "d", "", "Departure station name (defaults to configured home station)")
	searchCmd.Flags().StringP("arrival", "a", "", "Arrival station name")
	searchCmd.Flags().String("from", "", "Earliest departure, DD/MM/YYYY HH:MM")
	searchCmd.Flags().String("to", "", "Latest departure, DD/MM/YYYY HH:MM")
	searchCmd.Flags().StringP("output", "o", "", "Write the table to a file instead of stdout")
	searchCmd.Flags().StringP("class", "c", "", "Travel class to query (economy or first, defaults to configuration)")
	searchCmd.Flags().StringArray("passenger", nil, "Passenger birthdate DD/MM/YYYY (repeatable, default one adult)")
	searchCmd.Flags().StringSlice("card", nil, "Discount card reference applied to every passenger")
	searchCmd.Flags().Float64("min-price", 0, "Keep itineraries costing at least this much")
	searchCmd.Flags().Float64("max-price", 0, "Keep itineraries costing at most this much (0 = no limit)")
	searchCmd.Flags().String("transportation-mean", "", "Keep itineraries using exactly this mode on every segment (e.g. train, coach)")
	searchCmd.Flags().Int("min-segments", 0, "Minimum segments per trip")
	searchCmd.Flags().Int("max-segments", 0, "Maximum segments per trip (0 = no limit)")
	searchCmd.Flags().Bool("bicycle-with-reservation-only", false, "Only itineraries where a bicycle travels with a reservation")
	searchCmd.Flags().Bool("bicycle-without-reservation-only", false, "Only itineraries where a bicycle travels without a reservation")
	searchCmd.Flags().Bool("bicycle", false, "Only itineraries where a bicycle travels, with or without reservation")
	searchCmd.MarkFlagRequired("from")
	searchCmd.MarkFlagRequired("to")
}
